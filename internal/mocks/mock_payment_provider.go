package mocks

import (
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(user *domain.User, payment *domain.Payment) (*stripe.CheckoutSession, error) {
	args := m.Called(user, payment)

	session, _ := args.Get(0).(*stripe.CheckoutSession)
	return session, args.Error(1)
}
