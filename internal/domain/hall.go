package domain

import (
	"context"
	"slices"
)

type ScreenSize string

const (
	ScreenSizeStandard ScreenSize = "Standard"
	ScreenSizeLarge    ScreenSize = "Large"
	ScreenSizePremium  ScreenSize = "Premium"
)

type ScreenType string

const (
	ScreenType2D ScreenType = "2D"
	ScreenType3D ScreenType = "3D"
)

var (
	ScreenSizes = []ScreenSize{ScreenSizeStandard, ScreenSizeLarge, ScreenSizePremium}
	ScreenTypes = []ScreenType{ScreenType2D, ScreenType3D}
)

func (s ScreenSize) Valid() bool {
	return slices.Contains(ScreenSizes, s)
}

func (s ScreenType) Valid() bool {
	return slices.Contains(ScreenTypes, s)
}

type Hall struct {
	ID         int
	Name       string
	Seats      int
	ScreenSize ScreenSize
	ScreenType ScreenType
	Shows      []*Show
}

const (
	msgHallBookedUpdate = "You cannot modify a cinema hall with booked shows."
	msgHallBookedDelete = "Cannot delete a movie hall with booked movie shows."
)

// EnsureHallUpdatable refuses changes to a hall once any of its shows sold a seat.
func EnsureHallUpdatable(shows []*Show) error {
	if anySold(shows) {
		return newValidationError(KindState, "", msgHallBookedUpdate)
	}

	return nil
}

// EnsureHallDeletable refuses deleting a hall once any of its shows sold a seat.
func EnsureHallDeletable(shows []*Show) error {
	if anySold(shows) {
		return newValidationError(KindState, "", msgHallBookedDelete)
	}

	return nil
}

func anySold(shows []*Show) bool {
	return slices.ContainsFunc(shows, func(s *Show) bool { return s.SoldSeats > 0 })
}

type HallRepository interface {
	GetAll(ctx context.Context) ([]*Hall, error)
	GetById(ctx context.Context, id int) (*Hall, error)
	Create(ctx context.Context, hall *Hall) error
	Update(ctx context.Context, hall *Hall) error
	Delete(ctx context.Context, id int) error
}
