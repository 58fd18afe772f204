package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"

	"digitalstore/internal/config"
	"digitalstore/internal/model"
)

var _ Provider = (*StripeProvider)(nil)

type StripeProvider struct {
	sc *stripeclient.API
}

func NewStripeProvider(cfg *config.Stripe) *StripeProvider {
	sc := &stripeclient.API{}
	sc.Init(cfg.SecretKey, nil)
	return &StripeProvider{sc: sc}
}

func (p *StripeProvider) Name() model.PaymentMethod {
	return model.PaymentStripe
}

func (p *StripeProvider) CreateIntent(ctx context.Context, order *model.Order) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toCents(order.Total)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID)

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return &Intent{Ref: pi.ID}, nil
}

func (p *StripeProvider) Capture(ctx context.Context, ref string) error {
	pi, err := p.sc.PaymentIntents.Get(ref, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return fmt.Errorf("stripe get payment intent: %w", err)
	}

	// Intents confirmed client-side settle automatically; only an
	// intent still requiring capture needs the explicit call.
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return nil
	}
	if pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return fmt.Errorf("stripe payment intent %s not capturable (status %s)", ref, pi.Status)
	}

	_, err = p.sc.PaymentIntents.Capture(ref, &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return fmt.Errorf("stripe capture payment intent: %w", err)
	}

	return nil
}

func (p *StripeProvider) Verify(ctx context.Context, ref string) (bool, error) {
	pi, err := p.sc.PaymentIntents.Get(ref, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return false, fmt.Errorf("stripe get payment intent: %w", err)
	}

	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
