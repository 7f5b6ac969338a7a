package app

import (
	"net/http"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

func (app *Application) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.HallListResponse{Halls: make([]api.Hall, len(halls))}
	for i, hall := range halls {
		resp.Halls[i] = toApiHall(hall)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHallById(w http.ResponseWriter, r *http.Request, hallId int) {
	hall, err := app.hallRepo.GetById(r.Context(), hallId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	apiHall := toApiHall(hall)
	shows := toApiShows(hall.Shows)
	apiHall.Shows = &shows

	err = app.writeJSON(w, http.StatusOK, api.HallResponse{Hall: apiHall}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateHall(w http.ResponseWriter, r *http.Request) {
	hall, ok := app.readHallRequest(w, r)
	if !ok {
		return
	}

	err := app.hallRepo.Create(r.Context(), hall)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("hall created", "hallId", hall.ID)

	err = app.writeJSON(w, http.StatusCreated, api.HallResponse{Hall: toApiHall(hall)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateHall(w http.ResponseWriter, r *http.Request, hallId int) {
	hall, ok := app.readHallRequest(w, r)
	if !ok {
		return
	}
	hall.ID = hallId

	err := app.hallRepo.Update(r.Context(), hall)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.HallResponse{Hall: toApiHall(hall)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteHall(w http.ResponseWriter, r *http.Request, hallId int) {
	err := app.hallRepo.Delete(r.Context(), hallId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("hall deleted", "hallId", hallId)

	w.WriteHeader(http.StatusNoContent)
}

// readHallRequest decodes and validates a hall body, writing the error response itself
// when the body is rejected.
func (app *Application) readHallRequest(w http.ResponseWriter, r *http.Request) (*domain.Hall, bool) {
	var input api.HallRequest

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

	hall := &domain.Hall{
		Name:       input.Name,
		Seats:      input.Seats,
		ScreenSize: domain.ScreenSizeStandard,
		ScreenType: domain.ScreenType2D,
	}
	if input.ScreenSize != nil {
		hall.ScreenSize = domain.ScreenSize(*input.ScreenSize)
	}
	if input.ScreenType != nil {
		hall.ScreenType = domain.ScreenType(*input.ScreenType)
	}

	return hall, true
}

func toApiHall(hall *domain.Hall) api.Hall {
	return api.Hall{
		Id:         hall.ID,
		Name:       hall.Name,
		Seats:      hall.Seats,
		ScreenSize: api.ScreenSize(hall.ScreenSize),
		ScreenType: api.ScreenType(hall.ScreenType),
	}
}
