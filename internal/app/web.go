package app

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/ui"
)

const (
	sessionKeyUserID     = "authenticatedUserID"
	sessionKeyFlash      = "flash"
	sessionKeyFlashError = "flashError"
)

// formErrors is embedded by the web forms.
type formErrors struct {
	FieldErrors   map[string]string
	NonFieldError string
}

func (f *formErrors) valid() bool {
	return len(f.FieldErrors) == 0 && f.NonFieldError == ""
}

func (f *formErrors) addFieldError(field, message string) {
	if f.FieldErrors == nil {
		f.FieldErrors = map[string]string{}
	}

	if _, exists := f.FieldErrors[field]; !exists {
		f.FieldErrors[field] = message
	}
}

func (app *Application) webRoutes(r chi.Router) {
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.loadSessionUser)

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(static)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/shows", http.StatusSeeOther)
	})

	r.Get("/register", app.registerPage)
	r.Post("/register", app.registerPost)
	r.Get("/login", app.loginPage)
	r.Post("/login", app.loginPost)

	r.Group(func(r chi.Router) {
		r.Use(app.webRequirePermission(domain.ActionCatalogRead))

		r.Get("/movies", app.moviesPage)
		r.Get("/halls", app.hallsPage)
		r.Get("/halls/{hallId}", app.hallPage)
		r.Get("/shows", app.showsPage)
		r.Get("/shows/{showId}", app.showPage)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.webRequirePermission(domain.ActionProfileRead))

		r.Post("/logout", app.logoutPost)
		r.Get("/profile", app.profilePage)
	})

	r.With(app.webRequirePermission(domain.ActionOrdersCreate)).Post("/shows/{showId}/order", app.orderPost)

	r.Group(func(r chi.Router) {
		r.Use(app.webRequirePermission(domain.ActionHallsWrite))

		r.Get("/halls/create", app.hallCreatePage)
		r.Post("/halls/create", app.hallCreatePost)
		r.Get("/halls/{hallId}/edit", app.hallEditPage)
		r.Post("/halls/{hallId}/edit", app.hallEditPost)
		r.Get("/halls/{hallId}/delete", app.hallDeletePage)
		r.Post("/halls/{hallId}/delete", app.hallDeletePost)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.webRequirePermission(domain.ActionShowsWrite))

		r.Get("/shows/create", app.showCreatePage)
		r.Post("/shows/create", app.showCreatePost)
		r.Get("/shows/{showId}/edit", app.showEditPage)
		r.Post("/shows/{showId}/edit", app.showEditPost)
		r.Get("/shows/{showId}/delete", app.showDeletePage)
		r.Post("/shows/{showId}/delete", app.showDeletePost)
	})
}

// loadSessionUser resolves the user stored in the session. A user that no longer
// exists is logged out.
func (app *Application) loadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := app.sessionManager.GetInt(r.Context(), sessionKeyUserID)
		if id == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := app.userRepo.GetById(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				app.sessionManager.Remove(r.Context(), sessionKeyUserID)
				next.ServeHTTP(w, r)
				return
			}

			app.webServerError(w, r, err)
			return
		}

		next.ServeHTTP(w, app.contextSetUser(r, user))
	})
}

// webRequirePermission sends anonymous visitors to the login page and renders a
// forbidden page to users lacking the action.
func (app *Application) webRequirePermission(action domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := app.contextGetPrincipal(r)

			if !principal.Can(action) {
				if principal.IsAnonymous() {
					app.sessionManager.Put(r.Context(), sessionKeyFlashError, "Please log in to continue.")
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}

				app.webError(w, r, http.StatusForbidden, "You are not allowed to do that")
				return
			}

			w.Header().Add("Cache-Control", "no-store")

			next.ServeHTTP(w, r)
		})
	}
}

func (app *Application) webError(w http.ResponseWriter, r *http.Request, status int, title string) {
	data := app.newTemplateData(r)
	data.ErrorTitle = title

	app.render(w, r, status, "error.tmpl", data)
}

func (app *Application) webNotFound(w http.ResponseWriter, r *http.Request) {
	app.webError(w, r, http.StatusNotFound, "Page not found")
}

func (app *Application) webServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// webLoadError renders the page matching a failed lookup.
func (app *Application) webLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrRecordNotFound) {
		app.webNotFound(w, r)
		return
	}

	app.webServerError(w, r, err)
}

// urlID parses a numeric path parameter. Malformed ids name no resource.
func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, false
	}

	return id, true
}

func (app *Application) flash(r *http.Request, message string) {
	app.sessionManager.Put(r.Context(), sessionKeyFlash, message)
}

func (app *Application) flashError(r *http.Request, message string) {
	app.sessionManager.Put(r.Context(), sessionKeyFlashError, message)
}
