package app

import (
	"net/http"
	"sync"

	"github.com/metinatakli/picture-palace-hub/api"
)

var loadSwagger = sync.OnceValues(api.GetSwagger)

// GetOpenAPISpec serves the validated API contract.
func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	swagger, err := loadSwagger()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, swagger, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
