package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/riandyrn/otelchi"
)

const apiRoot = "/v1"

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	webNotFound := app.sessionManager.LoadAndSave(app.loadSessionUser(http.HandlerFunc(app.webNotFound)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if isAPIRequest(r) {
			app.notFoundResponse(w, r)
			return
		}
		webNotFound.ServeHTTP(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if isAPIRequest(r) {
			app.methodNotAllowedResponse(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)

	r.Group(func(r chi.Router) {
		r.Use(app.authenticate)

		r.Get(apiRoot+"/openapi.json", app.GetOpenAPISpec)

		api.HandlerWithOptions(app, api.ChiServerOptions{
			BaseURL:          apiRoot,
			BaseRouter:       r,
			Middlewares:      []api.MiddlewareFunc{app.guardOperation},
			ErrorHandlerFunc: app.parameterErrorResponse,
		})
	})

	r.Group(app.webRoutes)

	return r
}

func isAPIRequest(r *http.Request) bool {
	return r.URL.Path == apiRoot || strings.HasPrefix(r.URL.Path, apiRoot+"/")
}
