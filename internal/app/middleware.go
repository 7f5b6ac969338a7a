package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"go.opentelemetry.io/otel/trace"
)

// operationPolicy describes the guards applied to an API operation. An operation is
// either public or requires action.
type operationPolicy struct {
	public      bool
	action      domain.Action
	rateLimited bool
}

// operationPolicies is keyed by "METHOD /pattern" relative to the API root. Operations
// missing here are refused for every caller.
var operationPolicies = map[string]operationPolicy{
	"GET /healthcheck":                      {public: true},
	"POST /users":                           {public: true},
	"POST /tokens/authentication":           {public: true, rateLimited: true},
	"POST /webhook":                         {public: true},
	"DELETE /tokens/authentication":         {action: domain.ActionProfileRead},
	"GET /users":                            {action: domain.ActionCustomersList},
	"GET /users/me":                         {action: domain.ActionProfileRead},
	"GET /users/me/orders":                  {action: domain.ActionOrdersRead},
	"GET /users/me/orders/{orderId}/ticket": {action: domain.ActionOrdersRead},
	"POST /users/me/top-ups":                {action: domain.ActionBalanceTopUp},
	"GET /movies":                           {action: domain.ActionCatalogRead},
	"GET /movies/{movieId}":                 {action: domain.ActionCatalogRead},
	"GET /halls":                            {action: domain.ActionCatalogRead},
	"GET /halls/{hallId}":                   {action: domain.ActionCatalogRead},
	"POST /halls":                           {action: domain.ActionHallsWrite},
	"PUT /halls/{hallId}":                   {action: domain.ActionHallsWrite},
	"DELETE /halls/{hallId}":                {action: domain.ActionHallsWrite},
	"GET /shows":                            {action: domain.ActionCatalogRead},
	"GET /shows/{showId}":                   {action: domain.ActionCatalogRead},
	"POST /shows":                           {action: domain.ActionShowsWrite},
	"PUT /shows/{showId}":                   {action: domain.ActionShowsWrite},
	"DELETE /shows/{showId}":                {action: domain.ActionShowsWrite},
	"POST /orders":                          {action: domain.ActionOrdersCreate},
}

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// logRequest stores a request scoped logger and logs each completed request.
func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With(
			"requestId", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)

		if spanCtx := trace.SpanContextFromContext(r.Context()); spanCtx.HasTraceID() {
			logger = logger.With("traceId", spanCtx.TraceID().String())
		}

		r = app.contextSetLogger(r, logger)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.InfoContext(r.Context(), "request completed",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// authenticate resolves the bearer token, when present, to the requesting user.
// Requests without an Authorization header continue as the anonymous principal.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" || headerParts[1] == "" {
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		hash := domain.HashToken(headerParts[1])

		user, token, err := app.userRepo.GetByToken(r.Context(), hash, domain.AuthenticationScope)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.invalidAuthenticationTokenResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		if token.Expired(time.Now()) {
			err = app.tokenRepo.Delete(r.Context(), hash)
			if err != nil {
				app.contextGetLogger(r).Error("failed to delete expired token", "error", err)
			}

			app.expiredAuthenticationTokenResponse(w, r)
			return
		}

		r = app.contextSetUser(r, user)

		next.ServeHTTP(w, r)
	})
}

// requirePermission rejects principals lacking action: anonymous callers with 401,
// authenticated ones with 403.
func (app *Application) requirePermission(action domain.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := app.contextGetPrincipal(r)

			if !principal.Can(action) {
				app.contextGetLogger(r).Warn("permission denied", "action", action, "role", principal.Role)

				if principal.IsAnonymous() {
					app.authenticationRequiredResponse(w, r)
				} else {
					app.notPermittedResponse(w, r)
				}

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// guardOperation applies the operation's policy. It runs as a handler middleware of
// the generated API server, after routing, so the matched pattern is known.
func (app *Application) guardOperation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := operationKey(r)

		policy, ok := operationPolicies[key]
		if !ok || (!policy.public && policy.action == "") {
			app.contextGetLogger(r).Error("no access policy for operation", "operation", key)
			app.notPermittedResponse(w, r)
			return
		}

		handler := next
		if !policy.public {
			handler = app.requirePermission(policy.action)(handler)
		}
		if policy.rateLimited {
			handler = app.rateLimit(app.loginLimiter, handler)
		}

		handler.ServeHTTP(w, r)
	})
}

func operationKey(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}

	return r.Method + " " + strings.TrimPrefix(rctx.RoutePattern(), apiRoot)
}
