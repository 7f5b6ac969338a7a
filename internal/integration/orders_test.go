package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/internal/repository"
	"github.com/stretchr/testify/suite"
)

type OrdersTestSuite struct {
	BaseSuite
}

func TestOrdersSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(OrdersTestSuite))
}

func orderBody(showID, quantity int) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(`{"showId": %d, "seatQuantity": %d}`, showID, quantity))
}

func (s *OrdersTestSuite) TestCreateOrder() {
	customer := insertUser(s.T(), s.app.DB, "customer", false, "1000.00")
	hallID := insertHall(s.T(), s.app.DB, "Hall A", 100)
	showID := insertShow(s.T(), s.app.DB, hallID, "18:00", "20:00", "15.00", 10)

	scenarios := []Scenario{
		{
			Name:             "rejects an empty order",
			Method:           http.MethodPost,
			URL:              "/v1/orders",
			Body:             orderBody(showID, 0),
			Token:            customer.Token,
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "Please choose at least one seat."}`,
		},
		{
			Name:             "rejects more seats than the hall has",
			Method:           http.MethodPost,
			URL:              "/v1/orders",
			Body:             orderBody(showID, 101),
			Token:            customer.Token,
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "The hall has only 100 seats, 101 requested."}`,
		},
		{
			Name:             "rejects more seats than are available",
			Method:           http.MethodPost,
			URL:              "/v1/orders",
			Body:             orderBody(showID, 95),
			Token:            customer.Token,
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "Only 90 seats are available for this show, 95 requested."}`,
		},
		{
			Name:             "rejects an order the balance cannot cover",
			Method:           http.MethodPost,
			URL:              "/v1/orders",
			Body:             orderBody(showID, 70),
			Token:            customer.Token,
			ExpectedStatus:   http.StatusBadRequest,
			ExpectedResponse: `{"message": "Insufficient balance: the order costs 1050.00 but your balance is 1000.00."}`,
		},
		{
			Name:           "books the seats and debits the balance",
			Method:         http.MethodPost,
			URL:            "/v1/orders",
			Body:           orderBody(showID, 5),
			Token:          customer.Token,
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: fmt.Sprintf(`{
				"order": {
					"id": 1,
					"showId": %d,
					"movie": "The Grand Budapest Hotel",
					"hall": "Hall A",
					"startDate": %q,
					"startTime": "18:00",
					"seatQuantity": 5,
					"totalCost": "75.00"
				}
			}`, showID, todayString()),
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				if res.Header.Get("Location") != "/v1/users/me/orders/1/ticket" {
					t.Errorf("unexpected Location header %q", res.Header.Get("Location"))
				}

				events := app.Publisher.OrderCreated()
				if len(events) != 1 || events[0].SeatQuantity != 5 {
					t.Errorf("expected one order.created event for 5 seats, got %+v", events)
				}

				if n := len(app.Mailer.SentWithTemplate("order_confirmation.tmpl")); n != 1 {
					t.Errorf("expected one confirmation email, got %d", n)
				}
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}

	s.Equal(15, soldSeats(s.T(), s.app.DB, showID))
	s.Equal("925.00", balanceOf(s.T(), s.app.DB, customer.ID))
	s.Equal(1, countRows(s.T(), s.app.DB, "SELECT COUNT(*) FROM orders"))
}

func (s *OrdersTestSuite) TestOrderTicketAndProfile() {
	customer := insertUser(s.T(), s.app.DB, "customer", false, "1000.00")
	other := insertUser(s.T(), s.app.DB, "other", false, "1000.00")
	hallID := insertHall(s.T(), s.app.DB, "Hall A", 100)
	showID := insertShow(s.T(), s.app.DB, hallID, "18:00", "20:00", "12.50", 0)

	res := s.do(http.MethodPost, "/v1/orders", customer.Token, orderBody(showID, 2))
	requireStatus(s.T(), res, http.StatusCreated)
	order := decode[api.OrderResponse](s.T(), res).Order

	ticketURL := fmt.Sprintf("/v1/users/me/orders/%d/ticket", order.Id)

	res = s.do(http.MethodGet, ticketURL, customer.Token, nil)
	requireStatus(s.T(), res, http.StatusOK)
	s.Equal("image/png", res.Header.Get("Content-Type"))

	res = s.do(http.MethodGet, ticketURL, other.Token, nil)
	requireStatus(s.T(), res, http.StatusNotFound)

	res = s.do(http.MethodGet, "/v1/users/me", customer.Token, nil)
	requireStatus(s.T(), res, http.StatusOK)

	profile := decode[api.ProfileResponse](s.T(), res)
	s.Equal("customer", profile.User.Username)
	s.Equal("975.00", profile.User.Balance.StringFixed(2))
	s.Equal("25.00", profile.TotalAmount.StringFixed(2))
	s.Require().Len(profile.Orders, 1)
	s.Equal(order.Reference, profile.Orders[0].Reference)

	res = s.do(http.MethodGet, "/v1/users/me/orders", other.Token, nil)
	requireStatus(s.T(), res, http.StatusOK)
	s.Empty(decode[api.OrderListResponse](s.T(), res).Orders)
}

func (s *OrdersTestSuite) TestConcurrentOrdersNeverOversell() {
	hallID := insertHall(s.T(), s.app.DB, "Hall A", 10)
	showID := insertShow(s.T(), s.app.DB, hallID, "18:00", "20:00", "10.00", 0)

	const customers = 8

	tokens := make([]string, customers)
	for i := range tokens {
		tokens[i] = insertUser(s.T(), s.app.DB, fmt.Sprintf("customer%d", i), false, "100.00").Token
	}

	routes := s.app.App.Routes()
	statuses := make([]int, customers)

	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := prepareRequest(http.MethodPost, "/v1/orders", orderBody(showID, 3),
				map[string]string{"Authorization": "Bearer " + token})
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, req)
			statuses[i] = rec.Code
		}()
	}
	wg.Wait()
	s.app.App.WaitBackground()

	created := 0
	for _, status := range statuses {
		if status == http.StatusCreated {
			created++
		} else {
			s.Equal(http.StatusBadRequest, status)
		}
	}

	s.Equal(3, created)
	s.Equal(9, soldSeats(s.T(), s.app.DB, showID))
	s.Equal(created, countRows(s.T(), s.app.DB, "SELECT COUNT(*) FROM orders"))
	s.Equal(created, countRows(s.T(), s.app.DB, "SELECT COUNT(*) FROM users WHERE balance = 70.00"))
}

func (s *OrdersTestSuite) TestFailedOrderInsertRollsBackSeatsAndBalance() {
	ctx := context.Background()

	customer := insertUser(s.T(), s.app.DB, "customer", false, "1000.00")
	hallID := insertHall(s.T(), s.app.DB, "Hall A", 100)
	showID := insertShow(s.T(), s.app.DB, hallID, "18:00", "20:00", "15.00", 10)

	taken := domain.NewOrder(customer.ID, showID, 1)
	_, err := s.app.DB.Exec(ctx,
		`INSERT INTO orders (reference, customer_id, show_id, seat_quantity, total_cost) VALUES ($1, $2, $3, 1, 15.00)`,
		taken.Reference, customer.ID, showID)
	s.Require().NoError(err)

	order := domain.NewOrder(customer.ID, showID, 5)
	order.Reference = taken.Reference

	err = repository.NewPostgresOrderRepository(s.app.DB).Create(ctx, order)
	s.Require().Error(err)

	s.Equal(10, soldSeats(s.T(), s.app.DB, showID))
	s.Equal("1000.00", balanceOf(s.T(), s.app.DB, customer.ID))
	s.Equal(1, countRows(s.T(), s.app.DB, "SELECT COUNT(*) FROM orders WHERE show_id = $1", showID))
}

func todayString() string {
	return domain.Date(time.Now()).Format(time.DateOnly)
}
