package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"birthdayFundAPI/internal/contribution"
)

type PaymentOption struct {
	Method string
	Label  string
}

var paymentOptions = []PaymentOption{
	{Method: contribution.MethodCard, Label: "Debit / credit card"},
	{Method: contribution.MethodCash, Label: "Cash to the organiser"},
}

// PaymentIntent is what the payment page needs to show a contribution before it is confirmed.
// Mock is true when no Stripe key is configured or Stripe could not be reached.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Mock         bool
}

type PaymentService struct {
	stripe   *client.API
	currency string
	log      logrus.FieldLogger
}

func NewPaymentService(secretKey, currency string, log logrus.FieldLogger) *PaymentService {
	return newPaymentService(secretKey, currency, nil, log)
}

// NewPaymentServiceWithBackend points the Stripe client at apiURL instead of api.stripe.com.
func NewPaymentServiceWithBackend(secretKey, currency, apiURL string, log logrus.FieldLogger) *PaymentService {
	backends := &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(apiURL),
		}),
	}
	return newPaymentService(secretKey, currency, backends, log)
}

func newPaymentService(secretKey, currency string, backends *stripe.Backends, log logrus.FieldLogger) *PaymentService {
	s := &PaymentService{
		currency: strings.ToLower(currency),
		log:      log,
	}
	if s.currency == "" {
		s.currency = string(stripe.CurrencyUSD)
	}
	if secretKey != "" {
		sc := &client.API{}
		sc.Init(secretKey, backends)
		s.stripe = sc
	}
	return s
}

func (s *PaymentService) Options() []PaymentOption {
	return paymentOptions
}

func (s *PaymentService) StripeEnabled() bool {
	return s.stripe != nil
}

// Prepare creates a Stripe PaymentIntent for the amount when Stripe is configured.
// Repeated calls for the same checkout, name and amount resolve to the same intent.
// A Stripe failure is logged and the page falls back to the mock flow.
func (s *PaymentService) Prepare(ctx context.Context, checkoutID, name string, amountCents int64) *PaymentIntent {
	intent := &PaymentIntent{
		AmountCents: amountCents,
		Currency:    s.currency,
		Mock:        true,
	}
	if s.stripe == nil || amountCents <= 0 {
		return intent
	}

	pi, err := s.createIntent(ctx, s.idempotencyKey(checkoutID, name, amountCents), name, amountCents)
	if err != nil {
		s.log.WithError(err).Warn("stripe payment intent failed, using mock payment")
		return intent
	}

	intent.ID = pi.ID
	intent.ClientSecret = pi.ClientSecret
	intent.Mock = false
	return intent
}

func (s *PaymentService) idempotencyKey(checkoutID, name string, amountCents int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", checkoutID, name, amountCents, s.currency)))
	return "contribution-" + hex.EncodeToString(sum[:])
}

func (s *PaymentService) createIntent(ctx context.Context, idempotencyKey, name string, amountCents int64) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(fmt.Sprintf("Birthday gift contribution from %s", name)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)
	params.AddMetadata("contributor", name)

	pi, err := s.stripe.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi, nil
}
