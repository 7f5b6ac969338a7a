package domain

import (
	"context"
	"time"
)

// OrderCreatedEvent is published after an order is committed.
type OrderCreatedEvent struct {
	OrderID      int       `json:"order_id"`
	Reference    string    `json:"reference"`
	CustomerID   int       `json:"customer_id"`
	ShowID       int       `json:"show_id"`
	MovieTitle   string    `json:"movie_title"`
	HallName     string    `json:"hall_name"`
	StartDate    string    `json:"start_date"`
	StartTime    string    `json:"start_time"`
	SeatQuantity int       `json:"seat_quantity"`
	TotalCost    string    `json:"total_cost"`
	OrderedAt    time.Time `json:"ordered_at"`
}

func NewOrderCreatedEvent(order *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:      order.ID,
		Reference:    order.Reference.String(),
		CustomerID:   order.CustomerID,
		ShowID:       order.ShowID,
		MovieTitle:   order.MovieTitle,
		HallName:     order.HallName,
		StartDate:    order.StartDate.Format(time.DateOnly),
		StartTime:    order.StartTime.String(),
		SeatQuantity: order.SeatQuantity,
		TotalCost:    order.TotalCost.StringFixed(2),
		OrderedAt:    order.OrderedAt,
	}
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}
