package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"digitalstore/internal/dto"
	"digitalstore/internal/model"
	"digitalstore/internal/payment"
	"digitalstore/internal/repository"
)

type CheckoutService interface {
	// Checkout prices the cart, snapshots it into a pending order and
	// registers the total with the selected payment provider. The
	// owner email comes from the session token, never the client body.
	Checkout(ctx context.Context, token string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	// Confirm captures the payment and completes the order.
	Confirm(ctx context.Context, token, orderID string) (*model.Order, error)
	// ListOrders returns the calling account's orders.
	ListOrders(ctx context.Context, token string) ([]*model.Order, error)
	// HandlePaypalWebhook completes orders from asynchronous capture
	// notifications, at most once per event.
	HandlePaypalWebhook(ctx context.Context, event *model.PayPalWebhookEvent) error
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	webhookEventRepo repository.WebhookEventRepository
	providers        *payment.Registry
	logger           *zap.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	webhookEventRepo repository.WebhookEventRepository,
	providers *payment.Registry,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		webhookEventRepo: webhookEventRepo,
		providers:        providers,
		logger:           logger,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, token string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no matching session", ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve session token: %w", err)
	}

	orderID := uuid.NewString()
	subtotal := decimal.Zero
	items := make([]*model.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("find product %s: %w", line.ProductID, err)
		}

		if !product.OffersLicense(line.LicenseType) {
			return nil, fmt.Errorf("%w: %s/%s", ErrLicenseNotOffered, product.ID, line.LicenseType)
		}

		// Line price: license price plus every selected bundle,
		// computed from the live catalog and frozen into the order.
		price := product.LicensePrice(line.LicenseType)
		for _, bundleName := range line.Bundles {
			bundle, ok := product.FindBundle(line.LicenseType, bundleName)
			if !ok {
				return nil, fmt.Errorf("%w: %q on %s", ErrBundleNotFound, bundleName, product.ID)
			}
			price = price.Add(bundle.Price)
		}

		imageURL := ""
		if len(product.Images) > 0 {
			imageURL = product.Images[0]
		}

		items = append(items, &model.OrderItem{
			OrderID:     orderID,
			ProductID:   product.ID,
			Name:        product.Name,
			Price:       price,
			LicenseType: line.LicenseType,
			Bundles:     line.Bundles,
			ImageURL:    imageURL,
		})
		subtotal = subtotal.Add(price)
	}

	order := &model.Order{
		ID:            orderID,
		Email:         user.Email,
		Subtotal:      subtotal,
		Total:         subtotal, // no tax or discount layer
		PaymentMethod: req.PaymentMethod,
		Status:        model.OrderPending,
	}

	provider, err := s.providers.For(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	intent, err := provider.CreateIntent(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	order.PaymentRef = intent.Ref

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("email", order.Email),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total", order.Total.StringFixed(2)))

	return &dto.CheckoutResponse{
		OrderID:    order.ID,
		Subtotal:   order.Subtotal,
		Total:      order.Total,
		PaymentRef: intent.Ref,
		ApproveURL: intent.ApproveURL,
	}, nil
}

func (s *checkoutServiceImpl) Confirm(ctx context.Context, token, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}

	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no matching session", ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve session token: %w", err)
	}
	if user.Email != order.Email {
		return nil, fmt.Errorf("%w: order belongs to a different account", ErrUnauthorized)
	}

	// Redelivered confirms are harmless.
	if order.Status == model.OrderCompleted {
		return order, nil
	}
	if order.Status != model.OrderPending {
		return nil, fmt.Errorf("order %s is %s, not confirmable", orderID, order.Status)
	}

	provider, err := s.providers.For(order.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := provider.Capture(ctx, order.PaymentRef); err != nil {
		return nil, fmt.Errorf("capture payment for order %s: %w", orderID, err)
	}

	if err := s.orderRepo.MarkCompleted(ctx, s.db, orderID); err != nil {
		return nil, fmt.Errorf("mark order %s completed: %w", orderID, err)
	}
	order.Status = model.OrderCompleted

	s.logger.Info("order completed",
		zap.String("order_id", orderID),
		zap.String("payment_ref", order.PaymentRef))

	return order, nil
}

func (s *checkoutServiceImpl) ListOrders(ctx context.Context, token string) ([]*model.Order, error) {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no matching session", ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve session token: %w", err)
	}

	return s.orderRepo.FindByEmail(ctx, user.Email)
}

func (s *checkoutServiceImpl) HandlePaypalWebhook(ctx context.Context, event *model.PayPalWebhookEvent) error {
	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		s.logger.Debug("webhook event already processed", zap.String("event_id", event.ID))
		return nil
	}

	switch event.EventType {
	case "CHECKOUT.ORDER.APPROVED", "PAYMENT.CAPTURE.COMPLETED":
		order, err := s.orderForWebhook(ctx, event)
		if err != nil {
			return err
		}
		if order != nil && order.Status == model.OrderPending {
			if err := s.orderRepo.MarkCompleted(ctx, s.db, order.ID); err != nil {
				return fmt.Errorf("mark order %s completed: %w", order.ID, err)
			}
			s.logger.Info("order completed via webhook",
				zap.String("order_id", order.ID),
				zap.String("event_id", event.ID))
		}
	case "PAYMENT.CAPTURE.DENIED":
		order, err := s.orderForWebhook(ctx, event)
		if err != nil {
			return err
		}
		if order != nil && order.Status == model.OrderPending {
			if err := s.orderRepo.MarkFailed(ctx, s.db, order.ID); err != nil {
				return fmt.Errorf("mark order %s failed: %w", order.ID, err)
			}
			s.logger.Warn("order failed via webhook",
				zap.String("order_id", order.ID),
				zap.String("event_id", event.ID))
		}
	}

	return s.webhookEventRepo.MarkProcessed(ctx, "paypal", event.ID, event.EventType)
}

// orderForWebhook resolves the order a webhook event refers to. A nil
// order with nil error means the payment ref is not ours; the event is
// still recorded so redeliveries stay cheap.
func (s *checkoutServiceImpl) orderForWebhook(ctx context.Context, event *model.PayPalWebhookEvent) (*model.Order, error) {
	order, err := s.orderRepo.FindByPaymentRef(ctx, event.Resource.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("webhook for unknown payment ref", zap.String("payment_ref", event.Resource.ID))
			return nil, nil
		}
		return nil, fmt.Errorf("find order by payment ref: %w", err)
	}
	return order, nil
}
