package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is a wall clock time expressed in minutes after midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay parses an "HH:MM" (or "HH:MM:SS", seconds dropped) value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}

	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayFromDuration converts an offset from midnight, truncating to the minute.
func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	return TimeOfDay(int(d/time.Minute) % minutesPerDay)
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type ShowState string

const (
	ShowStateScheduled     ShowState = "scheduled"
	ShowStatePartiallySold ShowState = "partially_sold"
	ShowStateSoldOut       ShowState = "sold_out"
)

type Show struct {
	ID          int
	MovieID     int
	HallID      int
	MovieTitle  string
	HallName    string
	HallSeats   int
	StartDate   time.Time
	StartTime   TimeOfDay
	EndDate     time.Time
	EndTime     TimeOfDay
	SoldSeats   int
	TicketPrice decimal.Decimal
}

func (s *Show) AvailableSeats() int {
	return s.HallSeats - s.SoldSeats
}

func (s *Show) State() ShowState {
	switch {
	case s.SoldSeats == 0:
		return ShowStateScheduled
	case s.SoldSeats >= s.HallSeats:
		return ShowStateSoldOut
	default:
		return ShowStatePartiallySold
	}
}

func (s *Show) Schedule() Schedule {
	return Schedule{
		HallID:    s.HallID,
		StartDate: s.StartDate,
		StartTime: s.StartTime,
		EndDate:   s.EndDate,
		EndTime:   s.EndTime,
	}
}

const (
	msgShowBookedUpdate = "You cannot delete or update a movie show with sold seats."
	msgShowBookedDelete = "Cannot delete movie show with sold tickets."
)

// EnsureUpdatable permits schedule changes only while no seat has been sold.
func (s *Show) EnsureUpdatable() error {
	if s.State() != ShowStateScheduled {
		return newValidationError(KindState, "", msgShowBookedUpdate)
	}

	return nil
}

func (s *Show) EnsureDeletable() error {
	if s.State() != ShowStateScheduled {
		return newValidationError(KindState, "", msgShowBookedDelete)
	}

	return nil
}

type ShowDay string

const (
	ShowDayToday   ShowDay = "today"
	ShowDayNextDay ShowDay = "next_day"
)

type ShowFilters struct {
	Day    ShowDay
	From   *TimeOfDay
	To     *TimeOfDay
	HallID int
	SortBy string
	Today  time.Time
}

// DayDate resolves the filtered day relative to Today, or false when no day filter is set.
func (f ShowFilters) DayDate() (time.Time, bool) {
	today := Date(f.Today)

	switch f.Day {
	case ShowDayToday:
		return today, true
	case ShowDayNextDay:
		return today.AddDate(0, 0, 1), true
	default:
		return time.Time{}, false
	}
}

// TimeWindowApplies reports whether the from/to window and hall filters are in effect.
// Both only narrow the "today" listing.
func (f ShowFilters) TimeWindowApplies() bool {
	return f.Day == ShowDayToday && f.From != nil && f.To != nil
}

func (f ShowFilters) HallApplies() bool {
	return f.Day == ShowDayToday && f.HallID > 0
}

var showSortColumns = map[string]string{
	"start_time":  "s.start_time ASC",
	"-start_time": "s.start_time DESC",
	"price":       "s.ticket_price ASC",
	"-price":      "s.ticket_price DESC",
}

// OrderBy returns the SQL ordering for the filters. The today listing defaults to
// start time, everything else to id.
func (f ShowFilters) OrderBy() string {
	if clause, ok := showSortColumns[f.SortBy]; ok {
		return clause + ", s.id ASC"
	}

	if f.Day == ShowDayToday {
		return "s.start_time ASC, s.id ASC"
	}

	return "s.id ASC"
}

type ShowRepository interface {
	HallScheduleReader
	GetAll(ctx context.Context, filters ShowFilters) ([]*Show, error)
	GetById(ctx context.Context, id int) (*Show, error)
	Create(ctx context.Context, show *Show, validate ScheduleCheck) error
	Update(ctx context.Context, show *Show, validate ScheduleCheck) error
	Delete(ctx context.Context, id int) error
}
