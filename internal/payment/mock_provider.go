package payment

import (
	"fmt"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// MockPaymentProvider returns a deterministic checkout session without calling Stripe.
type MockPaymentProvider struct {
	checkoutBaseUrl string
}

func NewMockPaymentProvider(checkoutBaseUrl string) *MockPaymentProvider {
	return &MockPaymentProvider{checkoutBaseUrl: checkoutBaseUrl}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	payment *domain.Payment) (*stripe.CheckoutSession, error) {

	id := fmt.Sprintf("cs_test_%d_%d", user.ID, payment.ID)

	return &stripe.CheckoutSession{
		ID:  id,
		URL: m.checkoutBaseUrl + "/" + id,
	}, nil
}
