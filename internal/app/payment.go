package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/picture-palace-hub/api"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const topUpCurrency = "usd"

const maxWebhookBytes = 65536

// CreateTopUpCheckoutSession opens a checkout session that credits the paid amount to the
// user's balance once the provider confirms the payment.
func (app *Application) CreateTopUpCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var input api.TopUpRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)

	if !domain.CanCredit(user.Balance, input.Amount) {
		app.validationErrorResponse(w, r, []api.ValidationError{
			{Field: "amount", Issue: "would exceed the maximum balance of " + domain.MaxBalance.StringFixed(2)},
		})
		return
	}

	redirectUrl, err := app.startTopUp(r.Context(), user, input.Amount)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, api.CheckoutSessionResponse{RedirectUrl: redirectUrl}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) startTopUp(ctx context.Context, user *domain.User, amount decimal.Decimal) (string, error) {
	payment := &domain.Payment{
		UserID:   user.ID,
		Amount:   amount,
		Currency: topUpCurrency,
		Status:   domain.PaymentStatusPending,
	}

	err := app.paymentRepo.Create(ctx, payment)
	if err != nil {
		return "", err
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(user, payment)
	if err != nil {
		return "", err
	}

	err = app.paymentRepo.SetCheckoutSession(ctx, payment.ID, checkoutSession.ID)
	if err != nil {
		return "", err
	}

	return checkoutSession.URL, nil
}

func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("error reading webhook request body", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		app.config.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logger.Error("error verifying webhook signature", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		err = app.handleCheckoutCompleted(r, event)
	case stripe.EventTypeCheckoutSessionExpired:
		err = app.handleCheckoutExpired(r, event)
	default:
		logger.Info("unhandled webhook event", "type", event.Type)
	}

	if err != nil {
		logger.Error("error handling webhook event", "type", event.Type, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (app *Application) handleCheckoutCompleted(r *http.Request, event stripe.Event) error {
	var checkoutSession stripe.CheckoutSession

	err := json.Unmarshal(event.Data.Raw, &checkoutSession)
	if err != nil {
		return err
	}

	payment, err := app.paymentRepo.Complete(r.Context(), checkoutSession.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			app.contextGetLogger(r).Warn("no pending payment for checkout session", "sessionId", checkoutSession.ID)
			return nil
		}

		if errors.Is(err, domain.ErrBalanceLimitExceeded) {
			app.contextGetLogger(r).Error("top-up rejected, balance limit exceeded",
				"sessionId", checkoutSession.ID, "userId", payment.UserID, "amount", payment.Amount.StringFixed(2))
			return nil
		}

		return err
	}

	app.contextGetLogger(r).Info("balance topped up", "userId", payment.UserID, "amount", payment.Amount.StringFixed(2))

	app.metrics.recordTopUp(r.Context(), payment)

	if checkoutSession.CustomerEmail != "" {
		app.background(r, "send top-up receipt", func(ctx context.Context) error {
			return app.mailer.Send(checkoutSession.CustomerEmail, "top_up_completed.tmpl", map[string]any{
				"amount":   payment.Amount.StringFixed(2),
				"currency": payment.Currency,
			})
		})
	}

	return nil
}

func (app *Application) handleCheckoutExpired(r *http.Request, event stripe.Event) error {
	var checkoutSession stripe.CheckoutSession

	err := json.Unmarshal(event.Data.Raw, &checkoutSession)
	if err != nil {
		return err
	}

	return app.paymentRepo.UpdateStatus(r.Context(), checkoutSession.ID, domain.PaymentStatusCanceled)
}
