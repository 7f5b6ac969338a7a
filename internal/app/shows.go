package app

import (
	"net/http"
	"time"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) GetShows(w http.ResponseWriter, r *http.Request, params api.GetShowsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters, err := toShowFilters(params, time.Now())
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	shows, err := app.showRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ShowListResponse{Shows: toApiShows(shows)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowById(w http.ResponseWriter, r *http.Request, showId int) {
	show, err := app.showRepo.GetById(r.Context(), showId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ShowResponse{Show: toApiShow(show)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShow(w http.ResponseWriter, r *http.Request) {
	show, ok := app.readShowRequest(w, r)
	if !ok {
		return
	}

	err := app.showRepo.Create(r.Context(), show, app.schedule.Check(show.Schedule(), 0))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("show created", "showId", show.ID, "hallId", show.HallID)

	err = app.writeJSON(w, http.StatusCreated, api.ShowResponse{Show: toApiShow(show)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShow(w http.ResponseWriter, r *http.Request, showId int) {
	show, ok := app.readShowRequest(w, r)
	if !ok {
		return
	}
	show.ID = showId

	err := app.showRepo.Update(r.Context(), show, app.schedule.Check(show.Schedule(), showId))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ShowResponse{Show: toApiShow(show)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShow(w http.ResponseWriter, r *http.Request, showId int) {
	err := app.showRepo.Delete(r.Context(), showId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("show deleted", "showId", showId)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) readShowRequest(w http.ResponseWriter, r *http.Request) (*domain.Show, bool) {
	var input api.ShowRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return nil, false
	}

	// both times passed the time_of_day tag
	startTime, _ := domain.ParseTimeOfDay(input.StartTime)
	endTime, _ := domain.ParseTimeOfDay(input.EndTime)

	return &domain.Show{
		MovieID:     input.MovieId,
		HallID:      input.HallId,
		StartDate:   domain.Date(input.StartDate.Time),
		StartTime:   startTime,
		EndDate:     domain.Date(input.EndDate.Time),
		EndTime:     endTime,
		TicketPrice: input.TicketPrice,
	}, true
}

// toShowFilters converts validated query parameters.
func toShowFilters(params api.GetShowsParams, now time.Time) (domain.ShowFilters, error) {
	filters := domain.ShowFilters{Today: now}

	if params.Day != nil {
		filters.Day = domain.ShowDay(*params.Day)
	}
	if params.Hall != nil {
		filters.HallID = *params.Hall
	}
	if params.SortBy != nil {
		filters.SortBy = string(*params.SortBy)
	}

	if params.From != nil {
		from, err := domain.ParseTimeOfDay(*params.From)
		if err != nil {
			return filters, err
		}
		filters.From = &from
	}
	if params.To != nil {
		to, err := domain.ParseTimeOfDay(*params.To)
		if err != nil {
			return filters, err
		}
		filters.To = &to
	}

	return filters, nil
}

func toApiShows(shows []*domain.Show) []api.Show {
	result := make([]api.Show, len(shows))
	for i, show := range shows {
		result[i] = toApiShow(show)
	}

	return result
}

func toApiShow(show *domain.Show) api.Show {
	return api.Show{
		Id:             show.ID,
		MovieId:        show.MovieID,
		Movie:          show.MovieTitle,
		HallId:         show.HallID,
		Hall:           show.HallName,
		StartDate:      types.Date{Time: show.StartDate},
		StartTime:      show.StartTime.String(),
		EndDate:        types.Date{Time: show.EndDate},
		EndTime:        show.EndTime.String(),
		SoldSeats:      show.SoldSeats,
		AvailableSeats: show.AvailableSeats(),
		State:          api.ShowState(show.State()),
		TicketPrice:    api.NewMoney(show.TicketPrice),
	}
}
