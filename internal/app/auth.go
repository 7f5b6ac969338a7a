package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

var errInvalidCredentials = errors.New("invalid credentials")

// Login exchanges a username and password for a bearer token valid for the configured TTL.
func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

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

	user, err := app.checkCredentials(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			logger.Warn("failed login attempt")
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	token, err := domain.GenerateToken(int64(user.ID), app.config.Auth.TokenTTL, domain.AuthenticationScope)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.tokenRepo.Create(r.Context(), token)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("user logged in", "userId", user.ID)

	err = app.writeJSON(w, http.StatusCreated, api.TokenResponse{AuthenticationToken: toApiToken(token)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// Logout revokes every authentication token of the user.
func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	err := app.tokenRepo.DeleteAllForUser(r.Context(), domain.AuthenticationScope, user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkCredentials returns errInvalidCredentials for unknown users and wrong passwords alike.
func (app *Application) checkCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := app.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}

		return nil, err
	}

	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}

	if !match {
		return nil, errInvalidCredentials
	}

	return user, nil
}
