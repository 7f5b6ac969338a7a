package domain

import (
	"context"
	"strings"
)

const DefaultPosterUrl = "static/img/movie_poster.svg"

type Movie struct {
	ID                int
	Title             string
	Description       string
	DurationInMinutes int
	Director          string
	PosterUrl         string
}

type MovieFilters struct {
	Term string
	Sort string
}

func (f MovieFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f MovieFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
