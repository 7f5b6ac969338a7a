package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/internal/mocks"
)

func TestCreateHall(t *testing.T) {
	large := api.ScreenSize("Large")
	imax := api.ScreenSize("IMAX")
	threeD := api.ScreenType("3D")

	tests := []struct {
		name           string
		input          any
		wantHall       *domain.Hall
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "screen defaults",
			input:      api.HallRequest{Name: "Hall A", Seats: 100},
			wantHall:   &domain.Hall{ID: 5, Name: "Hall A", Seats: 100, ScreenSize: domain.ScreenSizeStandard, ScreenType: domain.ScreenType2D},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "explicit screen",
			input:      api.HallRequest{Name: "Hall B", Seats: 40, ScreenSize: &large, ScreenType: &threeD},
			wantHall:   &domain.Hall{ID: 5, Name: "Hall B", Seats: 40, ScreenSize: domain.ScreenSizeLarge, ScreenType: domain.ScreenType3D},
			wantStatus: http.StatusCreated,
		},
		{
			name:           "no seats",
			input:          api.HallRequest{Name: "Hall C"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 1",
		},
		{
			name:           "more seats than a column can hold",
			input:          map[string]any{"name": "Hall C", "seats": 3000000000},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 100000",
		},
		{
			name:           "missing name",
			input:          api.HallRequest{Seats: 10},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "unknown screen size",
			input:          api.HallRequest{Name: "Hall D", Seats: 10, ScreenSize: &imax},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be one of: Standard Large Premium",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *domain.Hall

			app := newTestApplication(func(a *Application) {
				a.hallRepo = &mocks.MockHallRepo{
					CreateFunc: func(ctx context.Context, hall *domain.Hall) error {
						hall.ID = 5
						created = hall
						return nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodPost, "/v1/halls", tt.input)
			r = asUser(app, r, admin())

			app.CreateHall(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("CreateHall() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantHall != nil {
				if diff := cmp.Diff(tt.wantHall, created); diff != "" {
					t.Errorf("hall mismatch (-want +got):\n%s", diff)
				}

				var resp api.HallResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.Hall.Id != 5 || resp.Hall.ScreenSize != api.ScreenSize(tt.wantHall.ScreenSize) {
					t.Errorf("unexpected hall %+v", resp.Hall)
				}
			} else if created != nil {
				t.Error("hall was created for an invalid request")
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestUpdateHall(t *testing.T) {
	tests := []struct {
		name           string
		updateErr      error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "hall without sold seats",
			wantStatus: http.StatusOK,
		},
		{
			name:           "hall with booked shows",
			updateErr:      domain.EnsureHallUpdatable([]*domain.Show{{SoldSeats: 3}}),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "You cannot modify a cinema hall with booked shows.",
		},
		{
			name:           "missing hall",
			updateErr:      domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:           "concurrent edit",
			updateErr:      domain.ErrEditConflict,
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int

			app := newTestApplication(func(a *Application) {
				a.hallRepo = &mocks.MockHallRepo{
					UpdateFunc: func(ctx context.Context, hall *domain.Hall) error {
						gotID = hall.ID
						return tt.updateErr
					},
				}
			})

			w, r := executeRequest(t, http.MethodPut, "/v1/halls/9", api.HallRequest{Name: "Hall A", Seats: 80})
			r = asUser(app, r, admin())

			app.UpdateHall(w, r, 9)

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("UpdateHall() status = %v, want %v", got, tt.wantStatus)
			}
			if gotID != 9 {
				t.Errorf("updated hall id = %d, want 9", gotID)
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestDeleteHall(t *testing.T) {
	tests := []struct {
		name           string
		deleteErr      error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "hall without sold seats",
			wantStatus: http.StatusNoContent,
		},
		{
			name:           "hall with booked shows",
			deleteErr:      domain.EnsureHallDeletable([]*domain.Show{{SoldSeats: 0}, {SoldSeats: 1}}),
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "Cannot delete a movie hall with booked movie shows.",
		},
		{
			name:           "missing hall",
			deleteErr:      domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.hallRepo = &mocks.MockHallRepo{
					DeleteFunc: func(ctx context.Context, id int) error {
						return tt.deleteErr
					},
				}
			})

			w, r := executeRequest(t, http.MethodDelete, "/v1/halls/2", nil)
			r = asUser(app, r, admin())

			app.DeleteHall(w, r, 2)

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("DeleteHall() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusNoContent {
				checkErrorResponse(t, w, struct {
					wantStatus     int
					wantErrMessage string
				}{
					wantStatus:     tt.wantStatus,
					wantErrMessage: tt.wantErrMessage,
				})
			}
		})
	}
}

func TestGetHallById(t *testing.T) {
	hall := &domain.Hall{
		ID:         4,
		Name:       "Hall A",
		Seats:      100,
		ScreenSize: domain.ScreenSizePremium,
		ScreenType: domain.ScreenType3D,
		Shows: []*domain.Show{
			{ID: 11, HallID: 4, HallSeats: 100, SoldSeats: 100},
			{ID: 12, HallID: 4, HallSeats: 100, SoldSeats: 10},
		},
	}

	app := newTestApplication(func(a *Application) {
		a.hallRepo = &mocks.MockHallRepo{
			GetByIdFunc: func(ctx context.Context, id int) (*domain.Hall, error) {
				return hall, nil
			},
		}
	})

	w, r := executeRequest(t, http.MethodGet, "/v1/halls/4", nil)

	app.GetHallById(w, r, 4)

	if w.Code != http.StatusOK {
		t.Fatalf("GetHallById() status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp api.HallResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Hall.Shows == nil || len(*resp.Hall.Shows) != 2 {
		t.Fatalf("expected the hall's two shows, got %+v", resp.Hall.Shows)
	}

	shows := *resp.Hall.Shows
	if shows[0].State != api.ShowState(domain.ShowStateSoldOut) || shows[1].AvailableSeats != 90 {
		t.Errorf("unexpected shows %+v", shows)
	}
}
