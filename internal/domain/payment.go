package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusRejected marks a paid top-up that was not credited because the
	// balance would exceed MaxBalance.
	PaymentStatusRejected PaymentStatus = "rejected"
)

// MaxBalance is the largest balance the users.balance column can hold.
var MaxBalance = decimal.RequireFromString("99999999.99")

// CanCredit reports whether amount can be added to balance without passing MaxBalance.
func CanCredit(balance, amount decimal.Decimal) bool {
	return balance.Add(amount).LessThanOrEqual(MaxBalance)
}

// Payment is a balance top-up paid through the payment provider.
type Payment struct {
	ID                int
	UserID            int
	CheckoutSessionId *string
	Amount            decimal.Decimal
	Currency          string
	Status            PaymentStatus
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	SetCheckoutSession(ctx context.Context, id int, checkoutSessionID string) error
	// Complete marks a pending payment completed and credits the user's balance in one
	// transaction. It returns ErrPaymentNotFound when nothing is pending for the session,
	// and the rejected payment with ErrBalanceLimitExceeded when the credit would pass
	// MaxBalance.
	Complete(ctx context.Context, checkoutSessionID string) (*Payment, error)
	UpdateStatus(ctx context.Context, checkoutSessionID string, status PaymentStatus) error
}
