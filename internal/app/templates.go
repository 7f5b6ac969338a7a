package app

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/ui"
	"github.com/shopspring/decimal"
)

// templateData is shared by every page. Pages only fill the fields they render.
type templateData struct {
	CurrentYear int
	Flash       string
	Error       string
	User        *domain.User
	IsAdmin     bool

	Movies      []*domain.Movie
	Halls       []*domain.Hall
	Hall        *domain.Hall
	Shows       []*domain.Show
	Show        *domain.Show
	Orders      []*domain.Order
	TotalAmount decimal.Decimal
	ShowQuery   showQuery

	Form        any
	FormAction  string
	ScreenSizes []domain.ScreenSize
	ScreenTypes []domain.ScreenType

	DeleteName string
	CancelUrl  string
	ErrorTitle string
}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.DateOnly)
	},
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.tmpl",
			"html/partials/*.tmpl",
			page,
		}

		ts, err := template.New(name).Funcs(templateFuncs).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}

func (app *Application) newTemplateData(r *http.Request) templateData {
	data := templateData{
		CurrentYear: time.Now().Year(),
		Flash:       app.sessionManager.PopString(r.Context(), sessionKeyFlash),
		Error:       app.sessionManager.PopString(r.Context(), sessionKeyFlashError),
	}

	if user, ok := r.Context().Value(userContextKey).(*domain.User); ok {
		data.User = user
		data.IsAdmin = user.IsAdmin
	}

	return data
}

// render writes the page to a buffer first so template failures still produce a clean
// server error page.
func (app *Application) render(w http.ResponseWriter, r *http.Request, status int, page string, data templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.webServerError(w, r, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)

	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
