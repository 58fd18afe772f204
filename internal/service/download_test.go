package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"digitalstore/internal/model"
	"digitalstore/internal/repository"
)

type downloadFixture struct {
	db    *gorm.DB
	store *fakeStore
	svc   DownloadService
}

func newDownloadFixture(t *testing.T) *downloadFixture {
	db := newTestDB(t)
	store := newFakeStore()
	svc := NewDownloadService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		store,
		testLogger(),
	)
	return &downloadFixture{db: db, store: store, svc: svc}
}

// seedPurchase sets up the canonical scenario: a completed order for
// a@x.com holding product_1 under a personal license with the
// "Extra Pack" bundle.
func (f *downloadFixture) seedPurchase(t *testing.T) (ownerToken string) {
	_, ownerToken = seedUser(t, f.db, "a@x.com")

	seedProduct(t, f.db, &model.Product{
		ID:            "product_1",
		Name:          "Mono Display Font",
		Download:      "mono-display.zip",
		PersonalPrice: price(29),
		Bundles: []model.Bundle{
			{ID: "extra-pack-personal", Name: "Extra Pack", Type: model.LicensePersonal, Download: "extra.zip"},
			{ID: "web-kit-commercial", Name: "Web Kit", Type: model.LicenseCommercial, Download: "webkit.zip"},
		},
	})

	seedOrder(t, f.db, &model.Order{
		ID:            "order_123",
		Email:         "a@x.com",
		Status:        model.OrderCompleted,
		PaymentMethod: model.PaymentStripe,
		Subtotal:      price(29),
		Total:         price(29),
		Items: []model.OrderItem{
			{
				ProductID:   "product_1",
				Name:        "Mono Display Font",
				Price:       price(29),
				LicenseType: model.LicensePersonal,
				Bundles:     []string{"Extra Pack"},
			},
		},
	})

	f.store.objects["mono-display.zip"] = "base-bytes"
	f.store.objects["extra.zip"] = "bundle-bytes"
	f.store.objects["webkit.zip"] = "webkit-bytes"

	return ownerToken
}

func TestDownload_BundleRequest(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	dl, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "Extra Pack")
	require.NoError(t, err)
	defer dl.Object.Body.Close()

	assert.Equal(t, "Extra Pack", dl.DisplayName)
	body, err := io.ReadAll(dl.Object.Body)
	require.NoError(t, err)
	assert.Equal(t, "bundle-bytes", string(body))
	assert.Equal(t, []string{"extra.zip"}, f.store.calls)
}

func TestDownload_BundleNameMatchIsCaseInsensitive(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	dl, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "extra pack")
	require.NoError(t, err)
	defer dl.Object.Body.Close()

	assert.Equal(t, "extra pack", dl.DisplayName, "display name follows the requested spelling")
	assert.Equal(t, []string{"extra.zip"}, f.store.calls)
}

func TestDownload_BaseProductRequest(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	dl, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "")
	require.NoError(t, err)
	defer dl.Object.Body.Close()

	assert.Equal(t, "Mono Display Font", dl.DisplayName)
	body, err := io.ReadAll(dl.Object.Body)
	require.NoError(t, err)
	assert.Equal(t, "base-bytes", string(body))
}

func TestDownload_WrongOwnerIsDenied(t *testing.T) {
	f := newDownloadFixture(t)
	f.seedPurchase(t)
	_, strangerToken := seedUser(t, f.db, "b@y.com")

	_, err := f.svc.Fetch(context.Background(), strangerToken, "order_123", "product_1", "Extra Pack")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, f.store.callCount(), "denied request must not touch the object store")
}

// The completion gate is an explicit status equality check: pending and
// failed orders are both rejected, not just missing ones.
func TestDownload_PendingOrderIsDenied(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	require.NoError(t, f.db.Model(&model.Order{}).
		Where("id = ?", "order_123").
		Update("status", model.OrderPending).Error)

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "Extra Pack")
	require.ErrorIs(t, err, ErrOrderNotCompleted)
	assert.Zero(t, f.store.callCount())
}

func TestDownload_UnknownOrder(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	_, err := f.svc.Fetch(context.Background(), token, "order_999", "product_1", "")
	require.ErrorIs(t, err, ErrOrderNotFound)
	assert.Zero(t, f.store.callCount())
}

func TestDownload_UnknownProduct(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_9", "")
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, f.store.callCount())
}

func TestDownload_UnknownBundle(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "Nonexistent Pack")
	require.ErrorIs(t, err, ErrBundleNotFound)
	assert.Zero(t, f.store.callCount())
}

// A completed order only entitles the products it actually contains:
// the base asset of a catalog product outside the order must not
// resolve, no matter how many other purchases the account holds.
func TestDownload_BaseAssetRequiresPurchasedItem(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	seedProduct(t, f.db, &model.Product{
		ID:            "product_9",
		Name:          "Poster Pack",
		Download:      "poster.zip",
		PersonalPrice: price(15),
	})
	f.store.objects["poster.zip"] = "unpaid-bytes"

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_9", "")
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, f.store.callCount())
}

// A bundle that only exists under the commercial license must not
// resolve for a line purchased under a personal license, even though
// it exists on the product.
func TestDownload_BundleScopedToPurchasedLicense(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "Web Kit")
	require.ErrorIs(t, err, ErrBundleNotFound)
	assert.Zero(t, f.store.callCount())
}

func TestDownload_ExpiredTokenIsDenied(t *testing.T) {
	f := newDownloadFixture(t)
	f.seedPurchase(t)

	stale := &model.SessionToken{
		Token:     uuid.NewString(),
		UserID:    1,
		CreatedAt: time.Now().Add(-model.SessionTokenTTL - time.Hour),
	}
	require.NoError(t, f.db.Create(stale).Error)

	_, err := f.svc.Fetch(context.Background(), stale.Token, "order_123", "product_1", "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, f.store.callCount())
}

// Hiding a product from the storefront does not revoke entitlement to
// an already-purchased copy.
func TestDownload_HiddenProductStaysDownloadable(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	require.NoError(t, f.db.Model(&model.Product{}).
		Where("id = ?", "product_1").
		Update("is_visible", false).Error)

	dl, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "")
	require.NoError(t, err)
	dl.Object.Body.Close()
}

// Known limitation: entitlement resolves bundle names against the live
// catalog, so renaming a bundle after purchase revokes the buyer's
// stored name.
func TestDownload_RenamedBundleRevokesAccess(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	require.NoError(t, f.db.Model(&model.Bundle{}).
		Where("id = ?", "extra-pack-personal").
		Update("name", "Extras Pack Vol 1").Error)

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "Extra Pack")
	require.ErrorIs(t, err, ErrBundleNotFound)
}

func TestDownload_StorageFailureIsSystemError(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)
	f.store.err = errors.New("backend unavailable")

	_, err := f.svc.Fetch(context.Background(), token, "order_123", "product_1", "")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, 1, f.store.callCount(), "authorization passed, so the store was reached")
}

func TestAuthorize_NoStorageDependency(t *testing.T) {
	f := newDownloadFixture(t)
	token := f.seedPurchase(t)

	auth, err := f.svc.Authorize(context.Background(), token, "order_123", "product_1", "Extra Pack")
	require.NoError(t, err)
	assert.Equal(t, "extra.zip", auth.FileKey)
	assert.Equal(t, "Extra Pack", auth.DisplayName)
	assert.Zero(t, f.store.callCount(), "authorization alone never performs storage I/O")
}
