package app

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	appvalidator "github.com/metinatakli/picture-palace-hub/internal/validator"
)

const (
	ErrInternalServer         = "The server encountered a problem and could not process your request"
	ErrNotFound               = "The requested resource not found"
	ErrMethodNotAllowed       = "The %s method is not supported for this resource"
	ErrFailedValidation       = "One or more fields are invalid"
	ErrEditConflict           = "Unable to update the record due to an edit conflict, please try again"
	ErrInvalidCredentials     = "Invalid authentication credentials"
	ErrInvalidToken           = "Invalid or missing authentication token"
	ErrExpiredToken           = "Token has expired, please log in again"
	ErrAuthenticationRequired = "You must be authenticated to access this resource"
	ErrNotPermitted           = "Your user account doesn't have the necessary permissions to access this resource"
	ErrRateLimitExceeded      = "Rate limit exceeded"
	ErrUsernameTaken          = "A user with that username already exists"
)

var pathParams = []string{"movieId", "hallId", "showId", "orderId"}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusConflict, ErrEditConflict)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidToken)
}

func (app *Application) expiredAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	app.errorResponse(w, r, http.StatusUnauthorized, ErrExpiredToken)
}

func (app *Application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrAuthenticationRequired)
}

func (app *Application) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrNotPermitted)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, ErrRateLimitExceeded)
}

// failedValidationResponse reports request validation failures with one entry per field.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	fieldErrors := make([]api.ValidationError, 0, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors = append(fieldErrors, api.ValidationError{
			Field: e.Field(),
			Issue: appvalidator.ValidationMessage(e),
		})
	}

	app.validationErrorResponse(w, r, fieldErrors)
}

func (app *Application) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors []api.ValidationError) {
	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: fieldErrors,
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// parameterErrorResponse handles path and query parameters that fail to bind. A
// malformed id cannot name an existing resource.
func (app *Application) parameterErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	if !errors.As(err, &paramErr) {
		app.badRequestResponse(w, r, err)
		return
	}

	if slices.Contains(pathParams, paramErr.ParamName) {
		app.notFoundResponse(w, r)
		return
	}

	app.validationErrorResponse(w, r, []api.ValidationError{
		{Field: paramErr.ParamName, Issue: "is invalid"},
	})
}

// domainErrorResponse maps errors returned by repositories and domain rules. Booking,
// scheduling and guard violations are terminal input errors reported as 400.
func (app *Application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if vErr, ok := domain.AsValidationError(err); ok {
		app.contextGetLogger(r).Info("request rejected", "kind", vErr.Kind, "field", vErr.Field, "reason", vErr.Message)
		app.errorResponse(w, r, http.StatusBadRequest, vErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrInvalidReference):
		app.badRequestResponse(w, r, domain.ErrInvalidReference)
	case errors.Is(err, domain.ErrEditConflict):
		app.editConflictResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
