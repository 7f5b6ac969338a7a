package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenUsers resolves the bearer tokens "customer-token" and "admin-token".
func tokenUsers() *mocks.MockUserRepo {
	users := map[string]*domain.User{
		string(domain.HashToken("customer-token")): customer(),
		string(domain.HashToken("admin-token")):    admin(),
	}

	return &mocks.MockUserRepo{
		GetByTokenFunc: func(ctx context.Context, hash []byte, scope string) (*domain.User, *domain.Token, error) {
			user, ok := users[string(hash)]
			if !ok {
				return nil, nil, domain.ErrRecordNotFound
			}
			return user, &domain.Token{Hash: hash, Scope: scope, Expiry: time.Now().Add(time.Hour)}, nil
		},
	}
}

func serve(app *Application, method, target, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)

	return w
}

func TestOperationPermissions(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.userRepo = tokenUsers()
		a.hallRepo = &mocks.MockHallRepo{
			GetAllFunc: func(ctx context.Context) ([]*domain.Hall, error) {
				return []*domain.Hall{}, nil
			},
			CreateFunc: func(ctx context.Context, hall *domain.Hall) error {
				hall.ID = 1
				return nil
			},
		}
		a.userRepo.(*mocks.MockUserRepo).GetAllFunc = func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{}, nil
		}
		a.orderRepo = &mocks.MockOrderRepo{
			GetAllByCustomerFunc: func(ctx context.Context, customerID int) ([]*domain.Order, error) {
				return nil, nil
			},
		}
	})

	hallBody := `{"name": "Hall A", "seats": 100}`

	tests := []struct {
		name           string
		method         string
		target         string
		token          string
		body           string
		wantStatus     int
		wantErrMessage string
	}{
		{"healthcheck is public", http.MethodGet, "/v1/healthcheck", "", "", http.StatusOK, ""},
		{"anonymous can list halls", http.MethodGet, "/v1/halls", "", "", http.StatusOK, ""},
		{"anonymous cannot create halls", http.MethodPost, "/v1/halls", "", hallBody, http.StatusUnauthorized, ErrAuthenticationRequired},
		{"customer cannot create halls", http.MethodPost, "/v1/halls", "customer-token", hallBody, http.StatusForbidden, ErrNotPermitted},
		{"admin creates halls", http.MethodPost, "/v1/halls", "admin-token", hallBody, http.StatusCreated, ""},
		{"anonymous has no profile", http.MethodGet, "/v1/users/me", "", "", http.StatusUnauthorized, ErrAuthenticationRequired},
		{"customer reads own profile", http.MethodGet, "/v1/users/me", "customer-token", "", http.StatusOK, ""},
		{"customer cannot list customers", http.MethodGet, "/v1/users", "customer-token", "", http.StatusForbidden, ErrNotPermitted},
		{"admin lists customers", http.MethodGet, "/v1/users", "admin-token", "", http.StatusOK, ""},
		{"anonymous cannot order", http.MethodPost, "/v1/orders", "", `{"showId": 1, "seatQuantity": 1}`, http.StatusUnauthorized, ErrAuthenticationRequired},
		{"unknown token", http.MethodGet, "/v1/halls", "forged", "", http.StatusUnauthorized, ErrInvalidToken},
		{"malformed id is not found", http.MethodGet, "/v1/halls/abc", "", "", http.StatusNotFound, ErrNotFound},
		{"unknown api path", http.MethodGet, "/v1/nothing-here", "", "", http.StatusNotFound, ErrNotFound},
		{"method not allowed", http.MethodPatch, "/v1/halls", "", "", http.StatusMethodNotAllowed, "The PATCH method is not supported for this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(app, tt.method, tt.target, tt.token, tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

// apiOperations lists the operations registered by the generated server, keyed like
// operationPolicies.
func apiOperations(t *testing.T, app *Application) []string {
	t.Helper()

	r := chi.NewRouter()
	api.HandlerWithOptions(app, api.ChiServerOptions{BaseURL: apiRoot, BaseRouter: r})

	var operations []string
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		operations = append(operations, method+" "+strings.TrimPrefix(route, apiRoot))
		return nil
	})
	require.NoError(t, err)

	return operations
}

func TestEveryOperationHasAccessPolicy(t *testing.T) {
	operations := apiOperations(t, newTestApplication())

	policies := make([]string, 0, len(operationPolicies))
	for key := range operationPolicies {
		policies = append(policies, key)
	}

	assert.ElementsMatch(t, policies, operations)
}

func TestOperationAccessByRole(t *testing.T) {
	// Zero means the caller gets past the guard; those requests are not sent.
	expected := map[string]struct{ anonymous, customer int }{
		"GET /healthcheck":                      {},
		"POST /users":                           {},
		"POST /tokens/authentication":           {},
		"POST /webhook":                         {},
		"DELETE /tokens/authentication":         {anonymous: http.StatusUnauthorized},
		"GET /users":                            {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"GET /users/me":                         {anonymous: http.StatusUnauthorized},
		"GET /users/me/orders":                  {anonymous: http.StatusUnauthorized},
		"GET /users/me/orders/{orderId}/ticket": {anonymous: http.StatusUnauthorized},
		"POST /users/me/top-ups":                {anonymous: http.StatusUnauthorized},
		"GET /movies":                           {},
		"GET /movies/{movieId}":                 {},
		"GET /halls":                            {},
		"GET /halls/{hallId}":                   {},
		"POST /halls":                           {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"PUT /halls/{hallId}":                   {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"DELETE /halls/{hallId}":                {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"GET /shows":                            {},
		"GET /shows/{showId}":                   {},
		"POST /shows":                           {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"PUT /shows/{showId}":                   {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"DELETE /shows/{showId}":                {anonymous: http.StatusUnauthorized, customer: http.StatusForbidden},
		"POST /orders":                          {anonymous: http.StatusUnauthorized},
	}

	app := newTestApplication(func(a *Application) {
		a.userRepo = tokenUsers()
	})

	pathParam := regexp.MustCompile(`\{[^}]+\}`)
	messages := map[int]string{
		http.StatusUnauthorized: ErrAuthenticationRequired,
		http.StatusForbidden:    ErrNotPermitted,
	}

	for _, operation := range apiOperations(t, app) {
		want, ok := expected[operation]
		require.True(t, ok, "operation %q has no expectation", operation)

		method, pattern, _ := strings.Cut(operation, " ")
		target := apiRoot + pathParam.ReplaceAllString(pattern, "1")

		for _, caller := range []struct {
			role   string
			token  string
			status int
		}{
			{role: "anonymous", token: "", status: want.anonymous},
			{role: "customer", token: "customer-token", status: want.customer},
		} {
			if caller.status == 0 {
				continue
			}

			t.Run(operation+" as "+caller.role, func(t *testing.T) {
				w := serve(app, method, target, caller.token, "")

				require.Equal(t, caller.status, w.Code, w.Body.String())

				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, messages[caller.status], resp.Message)
			})
		}
	}
}

func TestOperationWithoutPolicyIsRefused(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.userRepo = tokenUsers()
	})

	called := false

	r := chi.NewRouter()
	r.Use(app.authenticate)
	r.With(app.guardOperation).Get(apiRoot+"/unlisted", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, token := range []string{"", "customer-token", "admin-token"} {
		req := httptest.NewRequest(http.MethodGet, apiRoot+"/unlisted", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "token %q", token)
	}

	assert.False(t, called)
}

func TestQueryParameterErrorIsValidationError(t *testing.T) {
	app := newTestApplication()

	w := serve(app, http.MethodGet, "/v1/shows?hall=first", "", "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp api.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.ValidationErrors, 1)
	assert.Equal(t, "hall", resp.ValidationErrors[0].Field)
}

func TestHealthcheck(t *testing.T) {
	app := newTestApplication()

	w := serve(app, http.MethodGet, "/v1/healthcheck", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthcheckResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "test", resp.SystemInfo.Environment)
}

func TestOpenAPISpecIsServed(t *testing.T) {
	app := newTestApplication()

	w := serve(app, http.MethodGet, "/v1/openapi.json", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	assert.Contains(t, doc, "paths")
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/halls", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
}

func TestCustomerOrdersThroughRouter(t *testing.T) {
	var booked *domain.Order

	app := newTestApplication(func(a *Application) {
		a.userRepo = tokenUsers()
		a.orderRepo = &mocks.MockOrderRepo{
			CreateFunc: func(ctx context.Context, order *domain.Order) error {
				order.ID = 5
				order.TotalCost = decimal.NewFromInt(30)
				booked = order
				return nil
			},
		}
	})

	w := serve(app, http.MethodPost, "/v1/orders", "customer-token", `{"showId": 3, "seatQuantity": 2}`)
	app.wg.Wait()

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, booked)
	assert.Equal(t, 7, booked.CustomerID)
	assert.Equal(t, 3, booked.ShowID)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	r.RemoteAddr = "203.0.113.9:52100"
	assert.Equal(t, "203.0.113.9", clientIP(r))

	r.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(r))

	r.RemoteAddr = "198.51.100.4"
	assert.Equal(t, "198.51.100.4", clientIP(r))
}

func TestRateLimitWithoutLimiter(t *testing.T) {
	app := newTestApplication()

	called := false
	handler := app.rateLimit(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/tokens/authentication", nil))

	assert.True(t, called)
}
