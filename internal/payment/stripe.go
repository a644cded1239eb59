package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider crea intents usando la API de Stripe.
type StripeProvider struct {
	api *client.API
}

// NewStripe crea el provider con la secret key de la cuenta.
func NewStripe(secretKey string) (*StripeProvider, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, ErrNotConfigured
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}, nil
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(NormalizeCurrency(currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment: stripe create intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// Disabled es el provider cuando no hay secret key: toda creación falla.
type Disabled struct{}

func (Disabled) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	return nil, ErrNotConfigured
}
