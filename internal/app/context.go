package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

type contextKey string

const (
	principalContextKey = contextKey("principal")
	userContextKey      = contextKey("user")
	loggerContextKey    = contextKey("logger")
)

// contextSetUser stores the authenticated user and the principal derived from it.
func (app *Application) contextSetUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, principalContextKey, user.Principal())

	return r.WithContext(ctx)
}

func (app *Application) contextGetPrincipal(r *http.Request) domain.Principal {
	principal, ok := r.Context().Value(principalContextKey).(domain.Principal)
	if !ok {
		return domain.AnonymousPrincipal
	}

	return principal
}

// contextGetUser must only be called behind a permission check that rejects
// anonymous principals.
func (app *Application) contextGetUser(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userContextKey).(*domain.User)
	if !ok {
		panic("missing user value in request context")
	}

	return user
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), loggerContextKey, logger))
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
