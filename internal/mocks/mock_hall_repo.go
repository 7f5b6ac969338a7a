package mocks

import (
	"context"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

type MockHallRepo struct {
	domain.HallRepository
	GetAllFunc  func(ctx context.Context) ([]*domain.Hall, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.Hall, error)
	CreateFunc  func(ctx context.Context, hall *domain.Hall) error
	UpdateFunc  func(ctx context.Context, hall *domain.Hall) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockHallRepo) GetAll(ctx context.Context) ([]*domain.Hall, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockHallRepo) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	return m.CreateFunc(ctx, hall)
}

func (m *MockHallRepo) Update(ctx context.Context, hall *domain.Hall) error {
	return m.UpdateFunc(ctx, hall)
}

func (m *MockHallRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
