package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"digitalstore/internal/dto"
	"digitalstore/internal/model"
	"digitalstore/internal/payment"
	"digitalstore/internal/repository"
)

type fakeProvider struct {
	method     model.PaymentMethod
	captured   []string
	captureErr error
	settled    bool
}

var _ payment.Provider = (*fakeProvider)(nil)

func (p *fakeProvider) Name() model.PaymentMethod { return p.method }

func (p *fakeProvider) CreateIntent(ctx context.Context, order *model.Order) (*payment.Intent, error) {
	return &payment.Intent{Ref: "ref-" + order.ID, ApproveURL: "https://pay.example/" + order.ID}, nil
}

func (p *fakeProvider) Capture(ctx context.Context, ref string) error {
	if p.captureErr != nil {
		return p.captureErr
	}
	p.captured = append(p.captured, ref)
	p.settled = true
	return nil
}

func (p *fakeProvider) Verify(ctx context.Context, ref string) (bool, error) {
	return p.settled, nil
}

type checkoutFixture struct {
	db       *gorm.DB
	provider *fakeProvider
	svc      CheckoutService
	orders   repository.OrderRepository
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	db := newTestDB(t)
	provider := &fakeProvider{method: model.PaymentStripe}
	orders := repository.NewOrderRepository(db)

	svc := NewCheckoutService(
		db,
		repository.NewProductRepository(db),
		orders,
		repository.NewUserRepository(db),
		repository.NewWebhookEventRepository(db),
		payment.NewRegistry(provider, &fakeProvider{method: model.PaymentPaypal}),
		testLogger(),
	)

	return &checkoutFixture{db: db, provider: provider, svc: svc, orders: orders}
}

func (f *checkoutFixture) seedCatalog(t *testing.T) {
	seedProduct(t, f.db, &model.Product{
		ID:            "product_1",
		Name:          "Mono Display Font",
		Download:      "mono-display.zip",
		Images:        []string{"https://cdn.example/mono.png"},
		PersonalPrice: price(29),
		Bundles: []model.Bundle{
			{ID: "extra-pack-personal", Name: "Extra Pack", Type: model.LicensePersonal, Price: price(10), Download: "extra.zip"},
			{ID: "alt-cuts-personal", Name: "Alt Cuts", Type: model.LicensePersonal, Price: price(5), Download: "alt.zip"},
		},
	})
	seedProduct(t, f.db, &model.Product{
		ID:              "product_2",
		Name:            "Icon Set",
		Download:        "icons.zip",
		CommercialPrice: price(120),
	})
}

func TestCheckout_PricesAndSnapshotsOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal, Bundles: []string{"Extra Pack", "Alt Cuts"}},
			{ProductID: "product_2", LicenseType: model.LicenseCommercial},
		},
	})
	require.NoError(t, err)

	// 29 + 10 + 5 + 120
	assert.True(t, resp.Subtotal.Equal(price(164)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(resp.Subtotal), "no tax or discount layer")
	assert.Equal(t, "ref-"+resp.OrderID, resp.PaymentRef)

	order, err := f.orders.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", order.Email, "owner comes from the session, not the body")
	assert.Equal(t, model.OrderPending, order.Status)
	require.Len(t, order.Items, 2)

	line, ok := order.FindItem("product_1")
	require.True(t, ok)
	assert.True(t, line.Price.Equal(price(44)))
	assert.Equal(t, model.LicensePersonal, line.LicenseType)
	assert.Equal(t, []string{"Extra Pack", "Alt Cuts"}, line.Bundles)
	assert.Equal(t, "https://cdn.example/mono.png", line.ImageURL)
}

// The order stores a snapshot: catalog edits after checkout must not
// change what was purchased.
func TestCheckout_SnapshotSurvivesCatalogEdit(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.Product{}).
		Where("id = ?", "product_1").
		Updates(map[string]interface{}{"name": "Renamed Font", "personal_price": price(999)}).Error)

	order, err := f.orders.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	line, ok := order.FindItem("product_1")
	require.True(t, ok)
	assert.Equal(t, "Mono Display Font", line.Name)
	assert.True(t, line.Price.Equal(price(29)))
}

func TestCheckout_RejectsUnofferedLicense(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	// product_2 has no personal price.
	_, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_2", LicenseType: model.LicensePersonal},
		},
	})
	require.ErrorIs(t, err, ErrLicenseNotOffered)
}

func TestCheckout_RejectsUnknownBundle(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	_, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal, Bundles: []string{"No Such Pack"}},
		},
	})
	require.ErrorIs(t, err, ErrBundleNotFound)
}

func TestCheckout_RequiresSession(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)

	_, err := f.svc.Checkout(context.Background(), "bogus-token", &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestConfirm_CapturesAndCompletes(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.NoError(t, err)

	order, err := f.svc.Confirm(context.Background(), token, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, order.Status)
	assert.Equal(t, []string{resp.PaymentRef}, f.provider.captured)

	// Redelivered confirm is a no-op.
	again, err := f.svc.Confirm(context.Background(), token, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, again.Status)
	assert.Len(t, f.provider.captured, 1)
}

func TestConfirm_WrongOwnerIsDenied(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")
	_, strangerToken := seedUser(t, f.db, "b@y.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), strangerToken, resp.OrderID)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestConfirm_CaptureFailureLeavesOrderPending(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentStripe,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.NoError(t, err)

	f.provider.captureErr = errors.New("card declined")
	_, err = f.svc.Confirm(context.Background(), token, resp.OrderID)
	require.Error(t, err)

	order, err := f.orders.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, order.Status)
}

func TestPaypalWebhook_CompletesOrderOnce(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentPaypal,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.NoError(t, err)

	event := &model.PayPalWebhookEvent{
		ID:        "WH-1",
		EventType: "PAYMENT.CAPTURE.COMPLETED",
		Resource:  model.PaypalOrder{ID: resp.PaymentRef},
	}

	require.NoError(t, f.svc.HandlePaypalWebhook(context.Background(), event))
	order, err := f.orders.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, order.Status)

	// Redelivery of the same event id is ignored.
	require.NoError(t, f.svc.HandlePaypalWebhook(context.Background(), event))
}

func TestPaypalWebhook_DeniedCaptureFailsOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCatalog(t)
	_, token := seedUser(t, f.db, "a@x.com")

	resp, err := f.svc.Checkout(context.Background(), token, &dto.CheckoutRequest{
		PaymentMethod: model.PaymentPaypal,
		Items: []dto.CheckoutItem{
			{ProductID: "product_1", LicenseType: model.LicensePersonal},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.HandlePaypalWebhook(context.Background(), &model.PayPalWebhookEvent{
		ID:        "WH-2",
		EventType: "PAYMENT.CAPTURE.DENIED",
		Resource:  model.PaypalOrder{ID: resp.PaymentRef},
	}))

	order, err := f.orders.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderFailed, order.Status)

	// A later completion event must not resurrect a failed order.
	require.NoError(t, f.svc.HandlePaypalWebhook(context.Background(), &model.PayPalWebhookEvent{
		ID:        "WH-3",
		EventType: "PAYMENT.CAPTURE.COMPLETED",
		Resource:  model.PaypalOrder{ID: resp.PaymentRef},
	}))
	order, err = f.orders.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderFailed, order.Status)
}
