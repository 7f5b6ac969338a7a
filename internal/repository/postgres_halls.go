package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]*domain.Hall, error) {
	query := `SELECT id, name, seats, screen_size, screen_type FROM halls ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := []*domain.Hall{}

	for rows.Next() {
		hall, err := scanHall(rows)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}

// GetById returns the hall together with its shows.
func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	query := `SELECT id, name, seats, screen_size, screen_type FROM halls WHERE id = $1`

	hall, err := scanHall(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}

	hall.Shows, err = showsByHall(ctx, p.db, id, false)
	if err != nil {
		return nil, err
	}

	return hall, nil
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	query := `
		INSERT INTO halls (name, seats, screen_size, screen_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return p.db.QueryRow(ctx, query, hall.Name, hall.Seats, hall.ScreenSize, hall.ScreenType).Scan(&hall.ID)
}

// Update refuses to modify a hall once any of its shows sold a seat. The shows stay
// locked until commit so no order can slip in between the check and the update.
func (p *PostgresHallRepository) Update(ctx context.Context, hall *domain.Hall) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		shows, err := lockHallShows(ctx, tx, hall.ID)
		if err != nil {
			return err
		}

		err = domain.EnsureHallUpdatable(shows)
		if err != nil {
			return err
		}

		query := `
			UPDATE halls
			SET name = $1, seats = $2, screen_size = $3, screen_type = $4
			WHERE id = $5`

		_, err = tx.Exec(ctx, query, hall.Name, hall.Seats, hall.ScreenSize, hall.ScreenType, hall.ID)
		if err != nil {
			return err
		}

		hall.Shows = shows
		return nil
	})
}

// Delete removes a hall and its shows, unless any show sold a seat.
func (p *PostgresHallRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		shows, err := lockHallShows(ctx, tx, id)
		if err != nil {
			return err
		}

		err = domain.EnsureHallDeletable(shows)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
		return err
	})
}

func lockHallShows(ctx context.Context, tx pgx.Tx, hallID int) ([]*domain.Show, error) {
	var id int

	err := tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, hallID).Scan(&id)
	if err != nil {
		return nil, notFound(err)
	}

	return showsByHall(ctx, tx, hallID, true)
}

func scanHall(row scanner) (*domain.Hall, error) {
	var hall domain.Hall

	err := row.Scan(&hall.ID, &hall.Name, &hall.Seats, &hall.ScreenSize, &hall.ScreenType)
	if err != nil {
		return nil, err
	}

	return &hall, nil
}
