package domain

import (
	"context"
	"time"
)

// HallScheduleReader lists the shows booked into a hall.
type HallScheduleReader interface {
	GetByHall(ctx context.Context, hallID int) ([]*Show, error)
}

// ScheduleCheck validates a show's schedule against the hall's other shows. Repositories
// call it inside the write transaction with a reader bound to that transaction.
type ScheduleCheck func(ctx context.Context, shows HallScheduleReader) error

type Schedule struct {
	HallID    int
	StartDate time.Time
	StartTime TimeOfDay
	EndDate   time.Time
	EndTime   TimeOfDay
}

const (
	msgDateRange = "Start date cannot be after end date."
	msgTimeRange = "Start time must be before end time."
	msgPastDate  = "You cannot arrange movie shows for the past."
	msgCollision = "This show collides with another show in this hall."
)

// ValidateRange checks the ordering invariants and that the show does not end in the past.
func (s Schedule) ValidateRange(today time.Time) error {
	if Date(s.StartDate).After(Date(s.EndDate)) {
		return newValidationError(KindRange, "start_date", msgDateRange)
	}

	if s.StartTime >= s.EndTime {
		return newValidationError(KindRange, "start_time", msgTimeRange)
	}

	if Date(s.EndDate).Before(Date(today)) {
		return newValidationError(KindRange, "end_date", msgPastDate)
	}

	return nil
}

// CollidesWith applies the hall collision predicate: the other show ends on a later
// date and at a later time of day than this one starts. This is not a full interval
// intersection test: a show ending on the same day as this one starts never collides.
func (s Schedule) CollidesWith(other *Show) bool {
	return Date(other.EndDate).After(Date(s.StartDate)) && other.EndTime > s.StartTime
}

// ScheduleValidator enforces the scheduling rules for shows in a hall.
type ScheduleValidator struct {
	Now func() time.Time
}

func NewScheduleValidator() ScheduleValidator {
	return ScheduleValidator{Now: time.Now}
}

// Validate rejects a schedule that is out of order, in the past, or colliding with
// another show of the same hall. excludeID skips the show being edited; zero skips none.
func (v ScheduleValidator) Validate(ctx context.Context, shows HallScheduleReader, s Schedule, excludeID int) error {
	err := s.ValidateRange(v.Now())
	if err != nil {
		return err
	}

	existing, err := shows.GetByHall(ctx, s.HallID)
	if err != nil {
		return err
	}

	for _, other := range existing {
		if excludeID != 0 && other.ID == excludeID {
			continue
		}

		if s.CollidesWith(other) {
			return newValidationError(KindRange, "", msgCollision)
		}
	}

	return nil
}

// Check binds the validator to a schedule for use inside a repository transaction.
func (v ScheduleValidator) Check(s Schedule, excludeID int) ScheduleCheck {
	return func(ctx context.Context, shows HallScheduleReader) error {
		return v.Validate(ctx, shows, s, excludeID)
	}
}
