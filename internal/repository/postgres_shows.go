package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

const showSelect = `
	SELECT s.id, s.movie_id, s.hall_id, m.title, h.name, h.seats,
		s.start_date, s.start_time, s.end_date, s.end_time, s.sold_seats, s.ticket_price
	FROM shows s
	JOIN movies m ON m.id = s.movie_id
	JOIN halls h ON h.id = s.hall_id`

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

func (p *PostgresShowRepository) GetAll(ctx context.Context, filters domain.ShowFilters) ([]*domain.Show, error) {
	var (
		conditions []string
		args       []any
	)

	if day, ok := filters.DayDate(); ok {
		args = append(args, day)
		conditions = append(conditions, fmt.Sprintf("s.start_date <= $%d AND s.end_date >= $%d", len(args), len(args)))
	}

	if filters.TimeWindowApplies() {
		args = append(args, toPgTime(*filters.From), toPgTime(*filters.To))
		conditions = append(conditions, fmt.Sprintf("s.start_time BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	if filters.HallApplies() {
		args = append(args, filters.HallID)
		conditions = append(conditions, fmt.Sprintf("s.hall_id = $%d", len(args)))
	}

	query := showSelect
	if len(conditions) > 0 {
		query += "\n\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\tORDER BY " + filters.OrderBy()

	return queryShows(ctx, p.db, query, args...)
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	return getShow(ctx, p.db, id)
}

func (p *PostgresShowRepository) GetByHall(ctx context.Context, hallID int) ([]*domain.Show, error) {
	return showsByHall(ctx, p.db, hallID, false)
}

// Create inserts the show once validate accepts it. The hall row stays locked until
// commit so concurrent schedule changes in the same hall are validated one at a time.
func (p *PostgresShowRepository) Create(ctx context.Context, show *domain.Show, validate domain.ScheduleCheck) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := lockHall(ctx, tx, show.HallID)
		if err != nil {
			return err
		}

		err = validate(ctx, txShowReader{tx: tx})
		if err != nil {
			return err
		}

		query := `
			INSERT INTO shows (movie_id, hall_id, start_date, start_time, end_date, end_time, ticket_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`

		err = tx.QueryRow(
			ctx,
			query,
			show.MovieID,
			show.HallID,
			show.StartDate,
			toPgTime(show.StartTime),
			show.EndDate,
			toPgTime(show.EndTime),
			show.TicketPrice,
		).Scan(&show.ID)
		if err != nil {
			return referenceError(err)
		}

		created, err := getShow(ctx, tx, show.ID)
		if err != nil {
			return err
		}

		*show = *created
		return nil
	})
}

// Update reschedules a show that has not sold any seat yet.
func (p *PostgresShowRepository) Update(ctx context.Context, show *domain.Show, validate domain.ScheduleCheck) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := lockHall(ctx, tx, show.HallID)
		if err != nil {
			return err
		}

		current, err := lockShow(ctx, tx, show.ID)
		if err != nil {
			return err
		}

		err = current.EnsureUpdatable()
		if err != nil {
			return err
		}

		err = validate(ctx, txShowReader{tx: tx})
		if err != nil {
			return err
		}

		query := `
			UPDATE shows
			SET movie_id = $1, hall_id = $2, start_date = $3, start_time = $4,
				end_date = $5, end_time = $6, ticket_price = $7
			WHERE id = $8`

		_, err = tx.Exec(
			ctx,
			query,
			show.MovieID,
			show.HallID,
			show.StartDate,
			toPgTime(show.StartTime),
			show.EndDate,
			toPgTime(show.EndTime),
			show.TicketPrice,
			show.ID,
		)
		if err != nil {
			return referenceError(err)
		}

		updated, err := getShow(ctx, tx, show.ID)
		if err != nil {
			return err
		}

		*show = *updated
		return nil
	})
}

// Delete removes a show with no sold seats. The check and the delete share one
// transaction holding the show's row lock.
func (p *PostgresShowRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		show, err := lockShow(ctx, tx, id)
		if err != nil {
			return err
		}

		err = show.EnsureDeletable()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
		return err
	})
}

// txShowReader reads a hall's shows inside a write transaction.
type txShowReader struct {
	tx pgx.Tx
}

func (r txShowReader) GetByHall(ctx context.Context, hallID int) ([]*domain.Show, error) {
	return showsByHall(ctx, r.tx, hallID, false)
}

func lockHall(ctx context.Context, q querier, hallID int) error {
	var id int

	err := q.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, hallID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrInvalidReference
	}

	return err
}

// lockShow takes the show's row lock and then reads it with its hall and movie. The
// second statement sees rows committed while waiting for the lock.
func lockShow(ctx context.Context, q querier, id int) (*domain.Show, error) {
	var locked int

	err := q.QueryRow(ctx, `SELECT id FROM shows WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		return nil, notFound(err)
	}

	return getShow(ctx, q, id)
}

func getShow(ctx context.Context, q querier, id int) (*domain.Show, error) {
	show, err := scanShow(q.QueryRow(ctx, showSelect+"\n\tWHERE s.id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}

	return show, nil
}

func showsByHall(ctx context.Context, q querier, hallID int, forUpdate bool) ([]*domain.Show, error) {
	query := showSelect + "\n\tWHERE s.hall_id = $1\n\tORDER BY s.start_date, s.start_time, s.id"
	if forUpdate {
		query += "\n\tFOR UPDATE OF s"
	}

	return queryShows(ctx, q, query, hallID)
}

func queryShows(ctx context.Context, q querier, query string, args ...any) ([]*domain.Show, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []*domain.Show{}

	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}

		shows = append(shows, show)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func scanShow(row scanner) (*domain.Show, error) {
	var (
		show      domain.Show
		startTime pgtype.Time
		endTime   pgtype.Time
	)

	err := row.Scan(
		&show.ID,
		&show.MovieID,
		&show.HallID,
		&show.MovieTitle,
		&show.HallName,
		&show.HallSeats,
		&show.StartDate,
		&startTime,
		&show.EndDate,
		&endTime,
		&show.SoldSeats,
		&show.TicketPrice,
	)
	if err != nil {
		return nil, err
	}

	show.StartTime = fromPgTime(startTime)
	show.EndTime = fromPgTime(endTime)

	return &show, nil
}

func referenceError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return domain.ErrInvalidReference
	}

	return err
}
