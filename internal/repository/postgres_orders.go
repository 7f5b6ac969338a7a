package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/shopspring/decimal"
)

const orderSelect = `
	SELECT o.id, o.reference, o.customer_id, o.show_id, o.seat_quantity, o.total_cost, o.ordered_at,
		m.title, h.name, s.start_date, s.start_time
	FROM orders o
	JOIN shows s ON s.id = o.show_id
	JOIN movies m ON m.id = s.movie_id
	JOIN halls h ON h.id = s.hall_id`

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// Create books the order. The show and the customer rows are locked in that order and
// the booking checks are repeated on the locked values, so concurrent orders for the
// last seats or the same balance are serialized.
func (p *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		show, err := lockShow(ctx, tx, order.ShowID)
		if err != nil {
			return err
		}

		var balance decimal.Decimal

		err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, order.CustomerID).Scan(&balance)
		if err != nil {
			return notFound(err)
		}

		total, err := domain.CheckBooking(show, balance, order.SeatQuantity)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE shows SET sold_seats = sold_seats + $1 WHERE id = $2`, order.SeatQuantity, show.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE users SET balance = balance - $1 WHERE id = $2`, total, order.CustomerID)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO orders (reference, customer_id, show_id, seat_quantity, total_cost)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, ordered_at`

		err = tx.QueryRow(
			ctx,
			query,
			order.Reference,
			order.CustomerID,
			order.ShowID,
			order.SeatQuantity,
			total,
		).Scan(&order.ID, &order.OrderedAt)
		if err != nil {
			return err
		}

		order.TotalCost = total
		order.MovieTitle = show.MovieTitle
		order.HallName = show.HallName
		order.StartDate = show.StartDate
		order.StartTime = show.StartTime

		return nil
	})
}

func (p *PostgresOrderRepository) GetAllByCustomer(ctx context.Context, customerID int) ([]*domain.Order, error) {
	query := orderSelect + `
	WHERE o.customer_id = $1
	ORDER BY o.ordered_at DESC, o.id DESC`

	rows, err := p.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*domain.Order{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (p *PostgresOrderRepository) GetById(ctx context.Context, id int) (*domain.Order, error) {
	query := orderSelect + `
	WHERE o.id = $1`

	order, err := scanOrder(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}

	return order, nil
}

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		order     domain.Order
		startTime pgtype.Time
	)

	err := row.Scan(
		&order.ID,
		&order.Reference,
		&order.CustomerID,
		&order.ShowID,
		&order.SeatQuantity,
		&order.TotalCost,
		&order.OrderedAt,
		&order.MovieTitle,
		&order.HallName,
		&order.StartDate,
		&startTime,
	)
	if err != nil {
		return nil, err
	}

	order.StartTime = fromPgTime(startTime)

	return &order, nil
}
