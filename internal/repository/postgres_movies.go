package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

var movieSortColumns = map[string]bool{
	"id":                  true,
	"title":               true,
	"duration_in_minutes": true,
}

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	column := filters.SortColumn()
	if !movieSortColumns[column] {
		column = "id"
	}

	query := fmt.Sprintf(`SELECT id, title, description, duration_in_minutes, director, poster_url
		FROM movies
		WHERE (to_tsvector('simple', title) @@ plainto_tsquery('simple', $1)
			OR title ILIKE '%%' || $1 || '%%'
			OR $1 = '')
		ORDER BY %s %s, id ASC`, column, filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT id, title, description, duration_in_minutes, director, poster_url
		FROM movies
		WHERE id = $1`

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}

	return movie, nil
}

func scanMovie(row scanner) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationInMinutes,
		&movie.Director,
		&movie.PosterUrl,
	)
	if err != nil {
		return nil, err
	}

	if movie.PosterUrl == "" {
		movie.PosterUrl = domain.DefaultPosterUrl
	}

	return &movie, nil
}
