package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			user_id,
			amount,
			currency,
			status
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		payment.UserID,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (p *PostgresPaymentRepository) SetCheckoutSession(ctx context.Context, id int, checkoutSessionID string) error {
	query := `UPDATE payments
		SET stripe_checkout_session_id = $1, updated_at = NOW()
		WHERE id = $2`

	tag, err := p.db.Exec(ctx, query, checkoutSessionID, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// Complete credits the top-up to the user's balance. Only pending payments qualify, so a
// redelivered webhook credits nothing the second time. A credit that would pass
// domain.MaxBalance marks the payment rejected instead, and that outcome is committed.
func (p *PostgresPaymentRepository) Complete(ctx context.Context, checkoutSessionID string) (*domain.Payment, error) {
	payment := domain.Payment{CheckoutSessionId: &checkoutSessionID}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, user_id, amount, currency, created_at
			FROM payments
			WHERE stripe_checkout_session_id = $1 AND status = 'pending'
			FOR UPDATE`

		err := tx.QueryRow(ctx, query, checkoutSessionID).Scan(
			&payment.ID,
			&payment.UserID,
			&payment.Amount,
			&payment.Currency,
			&payment.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrPaymentNotFound
			}

			return err
		}

		var balance decimal.Decimal

		err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, payment.UserID).Scan(&balance)
		if err != nil {
			return notFound(err)
		}

		status := domain.PaymentStatusCompleted
		if !domain.CanCredit(balance, payment.Amount) {
			status = domain.PaymentStatusRejected
		}

		err = tx.QueryRow(ctx,
			`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING status, updated_at`,
			status, payment.ID,
		).Scan(&payment.Status, &payment.UpdatedAt)
		if err != nil {
			return err
		}

		if payment.Status == domain.PaymentStatusRejected {
			return nil
		}

		_, err = tx.Exec(ctx, `UPDATE users SET balance = balance + $1 WHERE id = $2`, payment.Amount, payment.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentStatusRejected {
		return &payment, domain.ErrBalanceLimitExceeded
	}

	return &payment, nil
}

func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	checkoutSessionID string,
	status domain.PaymentStatus) error {

	query := `UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE stripe_checkout_session_id = $2 AND status = 'pending'
	`

	_, err := p.db.Exec(ctx, query, status, checkoutSessionID)
	return err
}
