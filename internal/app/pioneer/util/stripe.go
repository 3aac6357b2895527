package util

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway реализует PaymentGateway поверх Stripe PaymentIntents.
// Состояние платежа локально не хранится - им владеет Stripe
type StripeGateway struct {
	client *client.API
}

// NewStripeGateway создает клиента Stripe с переданным секретным ключом
func NewStripeGateway(apiKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &StripeGateway{client: sc}
}

// CreateIntent создает PaymentIntent в usd и возвращает client secret
// для подтверждения платежа на стороне клиента
func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	// Отмена запроса к Stripe при обрыве клиентского запроса
	params.Context = ctx

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return pi.ClientSecret, nil
}
