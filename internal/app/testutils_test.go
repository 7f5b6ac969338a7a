package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/internal/events"
	"github.com/metinatakli/picture-palace-hub/internal/mailer"
	"github.com/metinatakli/picture-palace-hub/internal/mocks"
	"github.com/metinatakli/picture-palace-hub/internal/validator"
	"github.com/shopspring/decimal"
)

// testNow is the clock of the schedule validator in handler tests.
var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	templateCache, err := newTemplateCache()
	if err != nil {
		panic(err)
	}

	app := &Application{
		config: Config{
			Env:  "test",
			Auth: AuthConfig{TokenTTL: time.Hour},
		},
		validator:      validator.NewValidator(),
		logger:         logger,
		mailer:         mailer.NewMockMailer(),
		publisher:      &events.Recorder{},
		sessionManager: scs.New(),
		schedule:       domain.ScheduleValidator{Now: func() time.Time { return testNow }},
		metrics:        newAppMetrics(logger),
		templateCache:  templateCache,
		userRepo:       &mocks.MockUserRepo{},
		tokenRepo:      &mocks.MockTokenRepo{},
		movieRepo:      &mocks.MockMovieRepo{},
		hallRepo:       &mocks.MockHallRepo{},
		showRepo:       &mocks.MockShowRepo{},
		orderRepo:      &mocks.MockOrderRepo{},
		paymentRepo:    &mocks.MockPaymentRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// asUser attaches an authenticated user to the request, as the authenticate
// middleware does.
func asUser(app *Application, r *http.Request, user *domain.User) *http.Request {
	return app.contextSetUser(r, user)
}

func customer() *domain.User {
	return &domain.User{
		ID:       7,
		Username: "moviegoer",
		Email:    "moviegoer@example.com",
		Balance:  decimal.NewFromInt(1000),
	}
}

func admin() *domain.User {
	return &domain.User{
		ID:       1,
		Username: "admin",
		Email:    "admin@example.com",
		IsAdmin:  true,
		Balance:  decimal.NewFromInt(1000),
	}
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if tt.wantErrMessage != "" && !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
