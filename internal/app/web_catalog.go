package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	appvalidator "github.com/metinatakli/picture-palace-hub/internal/validator"
	"github.com/shopspring/decimal"
)

// showQuery holds the show list controls of the web page.
type showQuery struct {
	Day       string
	SortBy    string
	SortOrder string
}

func (q showQuery) filters(now time.Time) domain.ShowFilters {
	filters := domain.ShowFilters{Today: now}

	switch domain.ShowDay(q.Day) {
	case domain.ShowDayToday, domain.ShowDayNextDay:
		filters.Day = domain.ShowDay(q.Day)
	}

	sortBy := "start_time"
	if q.SortBy == "ticket_price" {
		sortBy = "price"
	}
	if q.SortOrder == "desc" {
		sortBy = "-" + sortBy
	}
	filters.SortBy = sortBy

	return filters
}

type hallForm struct {
	ID         int    `json:"-"`
	Name       string `json:"name" validate:"required,max=200"`
	Seats      int    `json:"seats" validate:"min=1,max=100000"`
	ScreenSize string `json:"screenSize" validate:"oneof=Standard Large Premium"`
	ScreenType string `json:"screenType" validate:"oneof=2D 3D"`
	formErrors `json:"-"`
}

type showForm struct {
	ID          int    `json:"-"`
	MovieID     int    `json:"movieId" validate:"min=1"`
	HallID      int    `json:"hallId" validate:"min=1"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,time_of_day"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
	EndTime     string `json:"endTime" validate:"required,time_of_day"`
	TicketPrice string `json:"ticketPrice" validate:"required"`
	formErrors  `json:"-"`
}

// domainFormFields maps the fields named by schedule errors to form inputs.
var domainFormFields = map[string]string{
	"start_date": "startDate",
	"start_time": "startTime",
	"end_date":   "endDate",
}

func (app *Application) moviesPage(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetAll(r.Context(), domain.MovieFilters{Sort: "-title"})
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Movies = movies

	app.render(w, r, http.StatusOK, "movies.tmpl", data)
}

func (app *Application) hallsPage(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Halls = halls

	app.render(w, r, http.StatusOK, "halls.tmpl", data)
}

func (app *Application) hallPage(w http.ResponseWriter, r *http.Request) {
	hall, ok := app.webLoadHall(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	data.Hall = hall

	app.render(w, r, http.StatusOK, "hall.tmpl", data)
}

func (app *Application) hallCreatePage(w http.ResponseWriter, r *http.Request) {
	form := &hallForm{
		ScreenSize: string(domain.ScreenSizeStandard),
		ScreenType: string(domain.ScreenType2D),
	}

	app.renderHallForm(w, r, http.StatusOK, form)
}

func (app *Application) hallCreatePost(w http.ResponseWriter, r *http.Request) {
	form, ok := app.parseHallForm(w, r)
	if !ok {
		return
	}

	hall := form.hall()

	err := app.hallRepo.Create(r.Context(), hall)
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	app.flash(r, fmt.Sprintf("%s has been created successfully.", hall.Name))
	http.Redirect(w, r, fmt.Sprintf("/halls/%d", hall.ID), http.StatusSeeOther)
}

func (app *Application) hallEditPage(w http.ResponseWriter, r *http.Request) {
	hall, ok := app.webLoadHall(w, r)
	if !ok {
		return
	}

	err := domain.EnsureHallUpdatable(hall.Shows)
	if err != nil {
		app.flashError(r, err.Error())
		http.Redirect(w, r, fmt.Sprintf("/halls/%d", hall.ID), http.StatusSeeOther)
		return
	}

	form := &hallForm{
		ID:         hall.ID,
		Name:       hall.Name,
		Seats:      hall.Seats,
		ScreenSize: string(hall.ScreenSize),
		ScreenType: string(hall.ScreenType),
	}

	app.renderHallForm(w, r, http.StatusOK, form)
}

func (app *Application) hallEditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "hallId")
	if !ok {
		app.webNotFound(w, r)
		return
	}

	form, ok := app.parseHallForm(w, r)
	if !ok {
		return
	}

	hall := form.hall()
	hall.ID = id

	err := app.hallRepo.Update(r.Context(), hall)
	if err != nil {
		if !app.webRedirectOnRejection(w, r, err, fmt.Sprintf("/halls/%d", id)) {
			app.webLoadError(w, r, err)
		}
		return
	}

	app.flash(r, fmt.Sprintf("%s has been updated.", hall.Name))
	http.Redirect(w, r, fmt.Sprintf("/halls/%d", id), http.StatusSeeOther)
}

func (app *Application) hallDeletePage(w http.ResponseWriter, r *http.Request) {
	hall, ok := app.webLoadHall(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	data.DeleteName = hall.Name
	data.FormAction = fmt.Sprintf("/halls/%d/delete", hall.ID)
	data.CancelUrl = fmt.Sprintf("/halls/%d", hall.ID)

	app.render(w, r, http.StatusOK, "confirm_delete.tmpl", data)
}

func (app *Application) hallDeletePost(w http.ResponseWriter, r *http.Request) {
	hall, ok := app.webLoadHall(w, r)
	if !ok {
		return
	}

	err := app.hallRepo.Delete(r.Context(), hall.ID)
	if err != nil {
		if !app.webRedirectOnRejection(w, r, err, fmt.Sprintf("/halls/%d", hall.ID)) {
			app.webLoadError(w, r, err)
		}
		return
	}

	app.flash(r, fmt.Sprintf("%s has been deleted.", hall.Name))
	http.Redirect(w, r, "/halls", http.StatusSeeOther)
}

func (app *Application) showsPage(w http.ResponseWriter, r *http.Request) {
	query := showQuery{
		Day:       r.URL.Query().Get("day"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	shows, err := app.showRepo.GetAll(r.Context(), query.filters(time.Now()))
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Shows = shows
	data.ShowQuery = query

	app.render(w, r, http.StatusOK, "shows.tmpl", data)
}

func (app *Application) showPage(w http.ResponseWriter, r *http.Request) {
	show, ok := app.webLoadShow(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	data.Show = show

	app.render(w, r, http.StatusOK, "show.tmpl", data)
}

func (app *Application) showCreatePage(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format(time.DateOnly)

	app.renderShowForm(w, r, http.StatusOK, &showForm{StartDate: today, EndDate: today})
}

func (app *Application) showCreatePost(w http.ResponseWriter, r *http.Request) {
	form, show, ok := app.parseShowForm(w, r)
	if !ok {
		return
	}

	err := app.showRepo.Create(r.Context(), show, app.schedule.Check(show.Schedule(), 0))
	if err != nil {
		app.showFormRejected(w, r, form, err)
		return
	}

	app.flash(r, "Movie show has been created successfully.")
	http.Redirect(w, r, fmt.Sprintf("/shows/%d", show.ID), http.StatusSeeOther)
}

func (app *Application) showEditPage(w http.ResponseWriter, r *http.Request) {
	show, ok := app.webLoadShow(w, r)
	if !ok {
		return
	}

	err := show.EnsureUpdatable()
	if err != nil {
		app.flashError(r, err.Error())
		http.Redirect(w, r, fmt.Sprintf("/shows/%d", show.ID), http.StatusSeeOther)
		return
	}

	form := &showForm{
		ID:          show.ID,
		MovieID:     show.MovieID,
		HallID:      show.HallID,
		StartDate:   show.StartDate.Format(time.DateOnly),
		StartTime:   show.StartTime.String(),
		EndDate:     show.EndDate.Format(time.DateOnly),
		EndTime:     show.EndTime.String(),
		TicketPrice: show.TicketPrice.StringFixed(2),
	}

	app.renderShowForm(w, r, http.StatusOK, form)
}

func (app *Application) showEditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "showId")
	if !ok {
		app.webNotFound(w, r)
		return
	}

	form, show, ok := app.parseShowForm(w, r)
	if !ok {
		return
	}
	form.ID = id
	show.ID = id

	err := app.showRepo.Update(r.Context(), show, app.schedule.Check(show.Schedule(), id))
	if err != nil {
		app.showFormRejected(w, r, form, err)
		return
	}

	app.flash(r, "Movie show has been updated.")
	http.Redirect(w, r, "/shows", http.StatusSeeOther)
}

func (app *Application) showDeletePage(w http.ResponseWriter, r *http.Request) {
	show, ok := app.webLoadShow(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	data.DeleteName = fmt.Sprintf("%s in %s", show.MovieTitle, show.HallName)
	data.FormAction = fmt.Sprintf("/shows/%d/delete", show.ID)
	data.CancelUrl = fmt.Sprintf("/shows/%d", show.ID)

	app.render(w, r, http.StatusOK, "confirm_delete.tmpl", data)
}

func (app *Application) showDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "showId")
	if !ok {
		app.webNotFound(w, r)
		return
	}

	err := app.showRepo.Delete(r.Context(), id)
	if err != nil {
		if !app.webRedirectOnRejection(w, r, err, fmt.Sprintf("/shows/%d", id)) {
			app.webLoadError(w, r, err)
		}
		return
	}

	app.flash(r, "Movie show has been deleted.")
	http.Redirect(w, r, "/shows", http.StatusSeeOther)
}

func (app *Application) webLoadHall(w http.ResponseWriter, r *http.Request) (*domain.Hall, bool) {
	id, ok := urlID(r, "hallId")
	if !ok {
		app.webNotFound(w, r)
		return nil, false
	}

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		app.webLoadError(w, r, err)
		return nil, false
	}

	return hall, true
}

func (app *Application) webLoadShow(w http.ResponseWriter, r *http.Request) (*domain.Show, bool) {
	id, ok := urlID(r, "showId")
	if !ok {
		app.webNotFound(w, r)
		return nil, false
	}

	show, err := app.showRepo.GetById(r.Context(), id)
	if err != nil {
		app.webLoadError(w, r, err)
		return nil, false
	}

	return show, true
}

// webRedirectOnRejection flashes a domain rejection and redirects to target. It reports
// false for any other error.
func (app *Application) webRedirectOnRejection(w http.ResponseWriter, r *http.Request, err error, target string) bool {
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		return false
	}

	app.flashError(r, vErr.Message)
	http.Redirect(w, r, target, http.StatusSeeOther)

	return true
}

func (app *Application) parseHallForm(w http.ResponseWriter, r *http.Request) (*hallForm, bool) {
	err := r.ParseForm()
	if err != nil {
		app.webError(w, r, http.StatusBadRequest, "Bad request")
		return nil, false
	}

	form := &hallForm{
		Name:       r.PostForm.Get("name"),
		ScreenSize: r.PostForm.Get("screen_size"),
		ScreenType: r.PostForm.Get("screen_type"),
	}
	form.ID, _ = urlID(r, "hallId")

	form.Seats, err = strconv.Atoi(r.PostForm.Get("seats"))
	if err != nil {
		form.addFieldError("seats", "must be a whole number")
	}

	app.checkForm(form, &form.formErrors)

	if !form.valid() {
		app.renderHallForm(w, r, http.StatusUnprocessableEntity, form)
		return nil, false
	}

	return form, true
}

func (f *hallForm) hall() *domain.Hall {
	return &domain.Hall{
		ID:         f.ID,
		Name:       f.Name,
		Seats:      f.Seats,
		ScreenSize: domain.ScreenSize(f.ScreenSize),
		ScreenType: domain.ScreenType(f.ScreenType),
	}
}

func (app *Application) renderHallForm(w http.ResponseWriter, r *http.Request, status int, form *hallForm) {
	data := app.newTemplateData(r)
	data.Form = form
	data.ScreenSizes = domain.ScreenSizes
	data.ScreenTypes = domain.ScreenTypes
	data.FormAction = "/halls/create"
	if form.ID != 0 {
		data.FormAction = fmt.Sprintf("/halls/%d/edit", form.ID)
	}

	app.render(w, r, status, "hall_form.tmpl", data)
}

func (app *Application) parseShowForm(w http.ResponseWriter, r *http.Request) (*showForm, *domain.Show, bool) {
	err := r.ParseForm()
	if err != nil {
		app.webError(w, r, http.StatusBadRequest, "Bad request")
		return nil, nil, false
	}

	form := &showForm{
		StartDate:   r.PostForm.Get("start_date"),
		StartTime:   r.PostForm.Get("start_time"),
		EndDate:     r.PostForm.Get("end_date"),
		EndTime:     r.PostForm.Get("end_time"),
		TicketPrice: r.PostForm.Get("ticket_price"),
	}
	form.ID, _ = urlID(r, "showId")
	form.MovieID, _ = strconv.Atoi(r.PostForm.Get("movie_id"))
	form.HallID, _ = strconv.Atoi(r.PostForm.Get("hall_id"))

	app.checkForm(form, &form.formErrors)

	price, err := decimal.NewFromString(form.TicketPrice)
	if err != nil {
		form.addFieldError("ticketPrice", "must be a number")
	} else if err := app.validator.Var(price, "ticket_price"); err != nil {
		form.addFieldError("ticketPrice", appvalidator.ValidationMessage(err.(validator.ValidationErrors)[0]))
	}

	if !form.valid() {
		app.renderShowForm(w, r, http.StatusUnprocessableEntity, form)
		return nil, nil, false
	}

	startDate, _ := time.Parse(time.DateOnly, form.StartDate)
	endDate, _ := time.Parse(time.DateOnly, form.EndDate)
	startTime, _ := domain.ParseTimeOfDay(form.StartTime)
	endTime, _ := domain.ParseTimeOfDay(form.EndTime)

	show := &domain.Show{
		ID:          form.ID,
		MovieID:     form.MovieID,
		HallID:      form.HallID,
		StartDate:   startDate,
		StartTime:   startTime,
		EndDate:     endDate,
		EndTime:     endTime,
		TicketPrice: price,
	}

	return form, show, true
}

// showFormRejected re-renders the form with the reason a schedule write was refused.
func (app *Application) showFormRejected(w http.ResponseWriter, r *http.Request, form *showForm, err error) {
	if vErr, ok := domain.AsValidationError(err); ok {
		if vErr.Kind == domain.KindState {
			app.flashError(r, vErr.Message)
			http.Redirect(w, r, fmt.Sprintf("/shows/%d", form.ID), http.StatusSeeOther)
			return
		}

		if field, ok := domainFormFields[vErr.Field]; ok {
			form.addFieldError(field, vErr.Message)
		} else {
			form.NonFieldError = vErr.Message
		}

		app.renderShowForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		form.NonFieldError = "Please choose an existing movie and hall."
		app.renderShowForm(w, r, http.StatusUnprocessableEntity, form)
	default:
		app.webLoadError(w, r, err)
	}
}

func (app *Application) renderShowForm(w http.ResponseWriter, r *http.Request, status int, form *showForm) {
	movies, err := app.movieRepo.GetAll(r.Context(), domain.MovieFilters{Sort: "title"})
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Form = form
	data.Movies = movies
	data.Halls = halls
	data.FormAction = "/shows/create"
	if form.ID != 0 {
		data.FormAction = fmt.Sprintf("/shows/%d/edit", form.ID)
	}

	app.render(w, r, status, "show_form.tmpl", data)
}

// checkForm runs the struct tags of form and records one message per failing field.
func (app *Application) checkForm(form any, errs *formErrors) {
	err := app.validator.Struct(form)
	if err == nil {
		return
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		errs.NonFieldError = err.Error()
		return
	}

	for _, e := range validationErrs {
		errs.addFieldError(e.Field(), appvalidator.ValidationMessage(e))
	}
}
