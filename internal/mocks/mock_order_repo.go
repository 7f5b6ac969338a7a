package mocks

import (
	"context"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

type MockOrderRepo struct {
	domain.OrderRepository
	CreateFunc           func(ctx context.Context, order *domain.Order) error
	GetAllByCustomerFunc func(ctx context.Context, customerID int) ([]*domain.Order, error)
	GetByIdFunc          func(ctx context.Context, id int) (*domain.Order, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.CreateFunc(ctx, order)
}

func (m *MockOrderRepo) GetAllByCustomer(ctx context.Context, customerID int) ([]*domain.Order, error) {
	return m.GetAllByCustomerFunc(ctx, customerID)
}

func (m *MockOrderRepo) GetById(ctx context.Context, id int) (*domain.Order, error) {
	return m.GetByIdFunc(ctx, id)
}
