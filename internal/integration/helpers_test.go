package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testPassword = "Secret123!"

// ignore indeterministic fields while comparing
var ignoredKeys = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
	"orderedAt": {},
	"token":     {},
	"expiry":    {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	t.Helper()

	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := ignoredKeys[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func decode[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"TRUNCATE TABLE payments, orders, shows, halls, tokens, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

type testUser struct {
	ID    int
	Token string
}

// insertUser stores a user with password testPassword and an authentication token.
func insertUser(t testing.TB, db *pgxpool.Pool, username string, isAdmin bool, balance string) testUser {
	t.Helper()
	ctx := context.Background()

	var user domain.User
	require.NoError(t, user.Password.Set(testPassword))

	var id int
	err := db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, is_admin, balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		username, username+"@example.com", user.Password.Hash, isAdmin, decimal.RequireFromString(balance),
	).Scan(&id)
	require.NoError(t, err)

	token, err := domain.GenerateToken(int64(id), time.Hour, domain.AuthenticationScope)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "INSERT INTO tokens (hash, user_id, expiry, scope) VALUES ($1, $2, $3, $4)",
		token.Hash, id, token.Expiry, token.Scope)
	require.NoError(t, err)

	return testUser{ID: id, Token: token.Plaintext}
}

func insertHall(t testing.TB, db *pgxpool.Pool, name string, seats int) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO halls (name, seats) VALUES ($1, $2) RETURNING id", name, seats).Scan(&id)
	require.NoError(t, err)

	return id
}

// insertShow schedules movie 1 in the hall from today until ten days later.
func insertShow(t testing.TB, db *pgxpool.Pool, hallID int, startTime, endTime, price string, soldSeats int) int {
	t.Helper()

	today := domain.Date(time.Now())

	var id int
	err := db.QueryRow(context.Background(), `
		INSERT INTO shows (movie_id, hall_id, start_date, start_time, end_date, end_time, sold_seats, ticket_price)
		VALUES (1, $1, $2, $3::time, $4, $5::time, $6, $7)
		RETURNING id`,
		hallID, today, startTime, today.AddDate(0, 0, 10), endTime, soldSeats, decimal.RequireFromString(price),
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func soldSeats(t testing.TB, db *pgxpool.Pool, showID int) int {
	t.Helper()

	var sold int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT sold_seats FROM shows WHERE id = $1", showID).Scan(&sold))

	return sold
}

func balanceOf(t testing.TB, db *pgxpool.Pool, userID int) string {
	t.Helper()

	var balance decimal.Decimal
	require.NoError(t, db.QueryRow(context.Background(), "SELECT balance FROM users WHERE id = $1", userID).Scan(&balance))

	return balance.StringFixed(2)
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))

	return n
}
