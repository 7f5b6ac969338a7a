package mocks

import (
	"context"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

// MockShowRepo runs the schedule check handed to Create and Update against
// GetByHallFunc, the way the Postgres repository runs it inside its transaction.
type MockShowRepo struct {
	domain.ShowRepository
	GetAllFunc    func(ctx context.Context, filters domain.ShowFilters) ([]*domain.Show, error)
	GetByIdFunc   func(ctx context.Context, id int) (*domain.Show, error)
	GetByHallFunc func(ctx context.Context, hallID int) ([]*domain.Show, error)
	CreateFunc    func(ctx context.Context, show *domain.Show) error
	UpdateFunc    func(ctx context.Context, show *domain.Show) error
	DeleteFunc    func(ctx context.Context, id int) error
}

func (m *MockShowRepo) GetAll(ctx context.Context, filters domain.ShowFilters) ([]*domain.Show, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockShowRepo) GetById(ctx context.Context, id int) (*domain.Show, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowRepo) GetByHall(ctx context.Context, hallID int) ([]*domain.Show, error) {
	if m.GetByHallFunc == nil {
		return nil, nil
	}

	return m.GetByHallFunc(ctx, hallID)
}

func (m *MockShowRepo) Create(ctx context.Context, show *domain.Show, validate domain.ScheduleCheck) error {
	err := validate(ctx, m)
	if err != nil {
		return err
	}

	return m.CreateFunc(ctx, show)
}

func (m *MockShowRepo) Update(ctx context.Context, show *domain.Show, validate domain.ScheduleCheck) error {
	err := validate(ctx, m)
	if err != nil {
		return err
	}

	return m.UpdateFunc(ctx, show)
}

func (m *MockShowRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
