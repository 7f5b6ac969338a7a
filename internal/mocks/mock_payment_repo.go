package mocks

import (
	"context"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) SetCheckoutSession(ctx context.Context, id int, checkoutSessionID string) error {
	args := m.Called(ctx, id, checkoutSessionID)
	return args.Error(0)
}

func (m *MockPaymentRepo) Complete(ctx context.Context, checkoutSessionID string) (*domain.Payment, error) {
	args := m.Called(ctx, checkoutSessionID)

	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, checkoutSessionID string, status domain.PaymentStatus) error {
	args := m.Called(ctx, checkoutSessionID, status)
	return args.Error(0)
}
