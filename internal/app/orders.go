package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/metinatakli/picture-palace-hub/internal/ticket"
	"github.com/oapi-codegen/runtime/types"
)

func (app *Application) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input api.CreateOrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// seat quantity is checked by the booking rules so it reports the booking message
	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)

	order, err := app.placeOrder(r, user, input.ShowId, input.SeatQuantity)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("%s/users/me/orders/%d/ticket", apiRoot, order.ID))

	err = app.writeJSON(w, http.StatusCreated, api.OrderResponse{Order: toApiOrder(order)}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOrdersOfUser(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	orders, err := app.orderRepo.GetAllByCustomer(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.OrderListResponse{Orders: toApiOrders(orders)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetOrderTicket renders the order's QR ticket. Orders of other customers are reported
// as missing.
func (app *Application) GetOrderTicket(w http.ResponseWriter, r *http.Request, orderId int) {
	order, err := app.orderRepo.GetById(r.Context(), orderId)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if !app.contextGetPrincipal(r).CanOnBehalfOf(domain.ActionOrdersRead, order.CustomerID) {
		app.notFoundResponse(w, r)
		return
	}

	png, err := ticket.QRCode(order, ticket.DefaultSize)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// placeOrder books seatQuantity seats of a show for user. The quantity is rejected
// before any stored state is read. Notifications run after the booking commits and
// never affect its outcome.
func (app *Application) placeOrder(r *http.Request, user *domain.User, showID, seatQuantity int) (*domain.Order, error) {
	err := domain.ValidateSeatQuantity(seatQuantity)
	if err != nil {
		return nil, err
	}

	order := domain.NewOrder(user.ID, showID, seatQuantity)

	err = app.orderRepo.Create(r.Context(), order)
	if err != nil {
		return nil, err
	}

	app.contextGetLogger(r).Info("order created",
		"orderId", order.ID,
		"showId", order.ShowID,
		"seatQuantity", order.SeatQuantity,
		"totalCost", order.TotalCost.StringFixed(2),
	)

	app.metrics.recordOrder(r.Context(), order)

	app.background(r, "publish order.created", func(ctx context.Context) error {
		return app.publisher.PublishOrderCreated(ctx, domain.NewOrderCreatedEvent(order))
	})

	app.background(r, "send order confirmation", func(ctx context.Context) error {
		return app.mailer.Send(user.Email, "order_confirmation.tmpl", map[string]any{
			"username":     user.Username,
			"reference":    order.Reference.String(),
			"movie":        order.MovieTitle,
			"hall":         order.HallName,
			"startDate":    order.StartDate.Format(time.DateOnly),
			"startTime":    order.StartTime.String(),
			"seatQuantity": order.SeatQuantity,
			"totalCost":    order.TotalCost.StringFixed(2),
		})
	})

	return order, nil
}

func toApiOrders(orders []*domain.Order) []api.Order {
	result := make([]api.Order, len(orders))
	for i, order := range orders {
		result[i] = toApiOrder(order)
	}

	return result
}

func toApiOrder(order *domain.Order) api.Order {
	return api.Order{
		Id:           order.ID,
		Reference:    types.UUID(order.Reference),
		ShowId:       order.ShowID,
		Movie:        order.MovieTitle,
		Hall:         order.HallName,
		StartDate:    types.Date{Time: order.StartDate},
		StartTime:    order.StartTime.String(),
		SeatQuantity: order.SeatQuantity,
		TotalCost:    api.NewMoney(order.TotalCost),
		OrderedAt:    types.Date{Time: order.OrderedAt},
	}
}
