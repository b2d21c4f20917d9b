package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentIntent is the gateway-side reservation of a charge amount.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentGateway reserves and reports on charges. Confirmation itself
// happens client-side against the gateway; the orchestrator only verifies
// the outcome.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// StripeGateway implements PaymentGateway over Stripe payment intents. The
// API key is set globally at startup.
type StripeGateway struct{}

// NewStripeGateway returns the Stripe-backed gateway.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

// CreateIntent reserves the amount and returns the client secret the
// customer confirms with.
func (g *StripeGateway) CreateIntent(_ context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// GetIntent fetches the intent's current status.
func (g *StripeGateway) GetIntent(_ context.Context, intentID string) (*PaymentIntent, error) {
	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// CancelIntent cancels an unconfirmed intent.
func (g *StripeGateway) CancelIntent(_ context.Context, intentID string) error {
	_, err := paymentintent.Cancel(intentID, nil)
	return err
}

// StatusSucceeded is the gateway status meaning funds are reserved.
const StatusSucceeded = "succeeded"
