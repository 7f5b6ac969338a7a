package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/internal/mocks"
)

func TestGetMovies(t *testing.T) {
	movies := []*domain.Movie{
		{
			ID:                1,
			Title:             "Casablanca",
			Description:       "A cynical expatriate meets a former lover.",
			DurationInMinutes: 102,
			Director:          "Michael Curtiz",
			PosterUrl:         domain.DefaultPosterUrl,
		},
		{
			ID:                2,
			Title:             "Metropolis",
			Description:       "A futuristic city sharply divided.",
			DurationInMinutes: 153,
			Director:          "Fritz Lang",
			PosterUrl:         domain.DefaultPosterUrl,
		},
	}

	tests := []struct {
		name           string
		params         api.GetMoviesParams
		getAllFunc     func(context.Context, domain.MovieFilters) ([]*domain.Movie, error)
		wantFilters    *domain.MovieFilters
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.MovieListResponse
	}{
		{
			name:   "successful retrieval with default parameters",
			params: api.GetMoviesParams{},
			getAllFunc: func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
				return movies, nil
			},
			wantFilters: &domain.MovieFilters{Sort: DefaultMovieSort},
			wantStatus:  http.StatusOK,
			wantResponse: &api.MovieListResponse{
				Movies: []api.Movie{
					{
						Id:                1,
						Title:             "Casablanca",
						Description:       "A cynical expatriate meets a former lover.",
						DurationInMinutes: 102,
						Director:          "Michael Curtiz",
						PosterUrl:         domain.DefaultPosterUrl,
					},
					{
						Id:                2,
						Title:             "Metropolis",
						Description:       "A futuristic city sharply divided.",
						DurationInMinutes: 153,
						Director:          "Fritz Lang",
						PosterUrl:         domain.DefaultPosterUrl,
					},
				},
			},
		},
		{
			name:   "search term and sort are passed through",
			params: api.GetMoviesParams{Term: ptr("metro"), Sort: ptr("-title")},
			getAllFunc: func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
				return movies[1:], nil
			},
			wantFilters: &domain.MovieFilters{Term: "metro", Sort: "-title"},
			wantStatus:  http.StatusOK,
		},
		{
			name:           "unknown sort column",
			params:         api.GetMoviesParams{Sort: ptr("poster_url")},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be one of: id -id title -title duration_in_minutes -duration_in_minutes",
		},
		{
			name:   "repository failure",
			params: api.GetMoviesParams{},
			getAllFunc: func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
				return nil, fmt.Errorf("connection refused")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilters *domain.MovieFilters

			app := newTestApplication(func(a *Application) {
				a.movieRepo = &mocks.MockMovieRepo{
					GetAllFunc: func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
						gotFilters = &filters
						return tt.getAllFunc(ctx, filters)
					},
				}
			})

			w, r := executeRequest(t, http.MethodGet, "/v1/movies", nil)

			app.GetMovies(w, r, tt.params)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetMovies() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantFilters != nil {
				if diff := cmp.Diff(tt.wantFilters, gotFilters); diff != "" {
					t.Errorf("filters mismatch (-want +got):\n%s", diff)
				}
			}

			if tt.wantResponse != nil {
				var got api.MovieListResponse
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(*tt.wantResponse, got); diff != "" {
					t.Errorf("response mismatch (-want +got):\n%s", diff)
				}
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

func TestGetMovieById(t *testing.T) {
	tests := []struct {
		name           string
		getByIdFunc    func(context.Context, int) (*domain.Movie, error)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "existing movie",
			getByIdFunc: func(ctx context.Context, id int) (*domain.Movie, error) {
				return &domain.Movie{ID: id, Title: "Casablanca"}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing movie",
			getByIdFunc: func(ctx context.Context, id int) (*domain.Movie, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.movieRepo = &mocks.MockMovieRepo{GetByIdFunc: tt.getByIdFunc}
			})

			w, r := executeRequest(t, http.MethodGet, "/v1/movies/3", nil)

			app.GetMovieById(w, r, 3)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetMovieById() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var got api.MovieResponse
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if got.Movie.Id != 3 || got.Movie.Title != "Casablanca" {
					t.Errorf("unexpected movie %+v", got.Movie)
				}
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
