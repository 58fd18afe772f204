package payment

import (
	"context"
	"fmt"

	"digitalstore/internal/client"
	"digitalstore/internal/model"
)

var _ Provider = (*PaypalProvider)(nil)

type PaypalProvider struct {
	client  client.PaypalClient
	baseURL string // storefront base URL for approval redirects
}

func NewPaypalProvider(paypalClient client.PaypalClient, baseURL string) *PaypalProvider {
	return &PaypalProvider{
		client:  paypalClient,
		baseURL: baseURL,
	}
}

func (p *PaypalProvider) Name() model.PaymentMethod {
	return model.PaymentPaypal
}

func (p *PaypalProvider) CreateIntent(ctx context.Context, order *model.Order) (*Intent, error) {
	resp, err := p.client.CreateOrder(ctx, order.Total, "USD", p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	return &Intent{
		Ref:        resp.OrderID,
		ApproveURL: resp.ApproveURL,
	}, nil
}

func (p *PaypalProvider) Capture(ctx context.Context, ref string) error {
	result, err := p.client.CaptureOrder(ctx, ref)
	if err != nil {
		return fmt.Errorf("paypal capture order: %w", err)
	}
	if result.Status != "COMPLETED" {
		return fmt.Errorf("paypal order %s not completed after capture (status %s)", ref, result.Status)
	}

	return nil
}

func (p *PaypalProvider) Verify(ctx context.Context, ref string) (bool, error) {
	result, err := p.client.GetOrder(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("paypal get order: %w", err)
	}

	return result.Status == "COMPLETED", nil
}
