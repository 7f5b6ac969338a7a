package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

type loginForm struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	formErrors `json:"-"`
}

type registerForm struct {
	Username   string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,password"`
	Password2  string `json:"password2" validate:"required,eqfield=Password"`
	formErrors `json:"-"`
}

func (app *Application) registerPage(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = &registerForm{}

	app.render(w, r, http.StatusOK, "register.tmpl", data)
}

func (app *Application) registerPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.webError(w, r, http.StatusBadRequest, "Bad request")
		return
	}

	form := &registerForm{
		Username:  r.PostForm.Get("username"),
		Email:     r.PostForm.Get("email"),
		Password:  r.PostForm.Get("password"),
		Password2: r.PostForm.Get("password2"),
	}

	app.checkForm(form, &form.formErrors)

	if form.valid() {
		var user *domain.User

		user, _, err = app.registerCustomer(r, form.Username, form.Email, form.Password)
		switch {
		case err == nil:
			err = app.startSession(r, user)
			if err != nil {
				app.webServerError(w, r, err)
				return
			}

			app.flash(r, fmt.Sprintf("Welcome, %s!", user.Username))
			http.Redirect(w, r, "/shows", http.StatusSeeOther)
			return
		case errors.Is(err, domain.ErrUserAlreadyExists):
			form.addFieldError("username", ErrUsernameTaken)
		default:
			app.webServerError(w, r, err)
			return
		}
	}

	form.Password, form.Password2 = "", ""

	data := app.newTemplateData(r)
	data.Form = form

	app.render(w, r, http.StatusUnprocessableEntity, "register.tmpl", data)
}

func (app *Application) loginPage(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = &loginForm{}

	app.render(w, r, http.StatusOK, "login.tmpl", data)
}

func (app *Application) loginPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.webError(w, r, http.StatusBadRequest, "Bad request")
		return
	}

	form := &loginForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}

	app.checkForm(form, &form.formErrors)

	if form.valid() {
		var user *domain.User

		user, err = app.checkCredentials(r.Context(), form.Username, form.Password)
		switch {
		case err == nil:
			err = app.startSession(r, user)
			if err != nil {
				app.webServerError(w, r, err)
				return
			}

			http.Redirect(w, r, "/shows", http.StatusSeeOther)
			return
		case errors.Is(err, errInvalidCredentials):
			form.NonFieldError = "Username or password is incorrect."
		default:
			app.webServerError(w, r, err)
			return
		}
	}

	form.Password = ""

	data := app.newTemplateData(r)
	data.Form = form

	app.render(w, r, http.StatusUnprocessableEntity, "login.tmpl", data)
}

// startSession renews the session token on login and stores the user id in it.
func (app *Application) startSession(r *http.Request, user *domain.User) error {
	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		return err
	}

	app.sessionManager.Put(r.Context(), sessionKeyUserID, user.ID)

	return nil
}

func (app *Application) logoutPost(w http.ResponseWriter, r *http.Request) {
	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	app.sessionManager.Remove(r.Context(), sessionKeyUserID)
	app.flash(r, "You have been logged out.")

	http.Redirect(w, r, "/shows", http.StatusSeeOther)
}

func (app *Application) profilePage(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	orders, err := app.orderRepo.GetAllByCustomer(r.Context(), user.ID)
	if err != nil {
		app.webServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Orders = orders
	data.TotalAmount = domain.OrderSummary(orders)

	app.render(w, r, http.StatusOK, "profile.tmpl", data)
}

// orderPost books seats from the show page. Rejections come back as flash messages.
func (app *Application) orderPost(w http.ResponseWriter, r *http.Request) {
	showID, ok := urlID(r, "showId")
	if !ok {
		app.webNotFound(w, r)
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.webError(w, r, http.StatusBadRequest, "Bad request")
		return
	}

	target := fmt.Sprintf("/shows/%d", showID)

	quantity, err := strconv.Atoi(r.PostForm.Get("seat_quantity"))
	if err != nil {
		quantity = 0
	}

	_, err = app.placeOrder(r, app.contextGetUser(r), showID, quantity)
	if err != nil {
		if !app.webRedirectOnRejection(w, r, err, target) {
			app.webLoadError(w, r, err)
		}
		return
	}

	app.flash(r, "Order successful!")
	http.Redirect(w, r, target, http.StatusSeeOther)
}
