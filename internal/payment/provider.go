// Package payment abstracts the payment gateways behind one interface,
// selected per order by its payment method.
package payment

import (
	"context"
	"fmt"

	"digitalstore/internal/model"
)

// Intent is a provider-side payment awaiting buyer action.
type Intent struct {
	// Ref is the provider's identifier (Stripe payment intent id,
	// PayPal order id); stored on the order as PaymentRef.
	Ref string
	// ApproveURL is set by redirect-based providers (PayPal).
	ApproveURL string
}

type Provider interface {
	Name() model.PaymentMethod
	// CreateIntent registers the order total with the gateway.
	CreateIntent(ctx context.Context, order *model.Order) (*Intent, error)
	// Capture settles the payment referenced by ref.
	Capture(ctx context.Context, ref string) error
	// Verify reports whether the payment referenced by ref is settled.
	Verify(ctx context.Context, ref string) (bool, error)
}

// Registry resolves the provider for an order's payment method.
type Registry struct {
	providers map[model.PaymentMethod]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	m := make(map[model.PaymentMethod]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) For(method model.PaymentMethod) (Provider, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, fmt.Errorf("no payment provider registered for %q", method)
	}
	return p, nil
}
