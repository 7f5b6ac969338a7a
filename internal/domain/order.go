package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID           int
	Reference    uuid.UUID
	CustomerID   int
	ShowID       int
	SeatQuantity int
	TotalCost    decimal.Decimal
	OrderedAt    time.Time

	MovieTitle string
	HallName   string
	StartDate  time.Time
	StartTime  TimeOfDay
}

func NewOrder(customerID, showID, seatQuantity int) *Order {
	return &Order{
		Reference:    uuid.New(),
		CustomerID:   customerID,
		ShowID:       showID,
		SeatQuantity: seatQuantity,
	}
}

const msgNoSeats = "Please choose at least one seat."

// ValidateSeatQuantity is checked before any stored state is read.
func ValidateSeatQuantity(quantity int) error {
	if quantity < 1 {
		return newValidationError(KindCapacity, "seat_quantity", msgNoSeats)
	}

	return nil
}

// CheckBooking validates a booking of quantity seats for show by a customer holding
// balance and returns the total cost. Capacity checks run before the balance check.
func CheckBooking(show *Show, balance decimal.Decimal, quantity int) (decimal.Decimal, error) {
	err := ValidateSeatQuantity(quantity)
	if err != nil {
		return decimal.Zero, err
	}

	if quantity > show.HallSeats {
		return decimal.Zero, newValidationError(KindCapacity, "seat_quantity", fmt.Sprintf(
			"The hall has only %d seats, %d requested.", show.HallSeats, quantity))
	}

	available := show.AvailableSeats()
	if quantity > available {
		return decimal.Zero, newValidationError(KindCapacity, "seat_quantity", fmt.Sprintf(
			"Only %d seats are available for this show, %d requested.", available, quantity))
	}

	total := show.TicketPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if balance.LessThan(total) {
		return decimal.Zero, newValidationError(KindFunds, "", fmt.Sprintf(
			"Insufficient balance: the order costs %s but your balance is %s.",
			total.StringFixed(2), balance.StringFixed(2)))
	}

	return total, nil
}

// OrderSummary aggregates a customer's orders for the profile view.
func OrderSummary(orders []*Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalCost)
	}

	return total
}

type OrderRepository interface {
	// Create books the order atomically: it locks the show and the customer, re-runs
	// CheckBooking on the locked rows, then writes the order, seat count and balance.
	Create(ctx context.Context, order *Order) error
	GetAllByCustomer(ctx context.Context, customerID int) ([]*Order, error)
	GetById(ctx context.Context, id int) (*Order, error)
}
