package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

func (app *Application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user, token, err := app.registerCustomer(r, input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			logger.Warn("registration attempt for existing username")
			app.validationErrorResponse(w, r, []api.ValidationError{
				{Field: "username", Issue: ErrUsernameTaken},
			})
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.RegisterResponse{
		User:                toApiUser(user),
		AuthenticationToken: toApiToken(token),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// registerCustomer creates a customer account together with its first authentication
// token and sends the welcome mail in the background.
func (app *Application) registerCustomer(r *http.Request, username, email, password string) (*domain.User, *domain.Token, error) {
	user := &domain.User{
		Username: username,
		Email:    email,
	}

	err := user.Password.Set(password)
	if err != nil {
		return nil, nil, err
	}

	token, err := app.userRepo.CreateWithToken(r.Context(), user, func(user *domain.User) (*domain.Token, error) {
		return domain.GenerateToken(int64(user.ID), app.config.Auth.TokenTTL, domain.AuthenticationScope)
	})
	if err != nil {
		return nil, nil, err
	}

	app.contextGetLogger(r).Info("user registered", "userId", user.ID)

	app.background(r, "send welcome mail", func(ctx context.Context) error {
		return app.mailer.Send(user.Email, "user_welcome.tmpl", map[string]any{
			"username": user.Username,
			"balance":  user.Balance.StringFixed(2),
		})
	})

	return user, token, nil
}

// GetCurrentUser returns the profile of the authenticated user with the orders placed
// so far and the amount spent on them.
func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	orders, err := app.orderRepo.GetAllByCustomer(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ProfileResponse{
		User:        toApiUser(user),
		Orders:      toApiOrders(orders),
		TotalAmount: api.NewMoney(domain.OrderSummary(orders)),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.userRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserListResponse{Users: make([]api.UserResponse, len(users))}
	for i, user := range users {
		resp.Users[i] = toApiUser(user)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiUser(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		Balance:   api.NewMoney(user.Balance),
		CreatedAt: user.CreatedAt,
	}
}

func toApiToken(token *domain.Token) api.AuthenticationToken {
	return api.AuthenticationToken{
		Token:  token.Plaintext,
		Expiry: token.Expiry,
	}
}
