package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"digitalstore/internal/model"
	"digitalstore/internal/repository"
	"digitalstore/internal/storage"
)

// Authorization is a positive download decision: the requested asset
// resolved to its object key and user-facing name.
type Authorization struct {
	Product     *model.Product
	FileKey     string
	DisplayName string
}

// Download couples the authorized asset with its open byte stream.
type Download struct {
	Object      *storage.Object
	DisplayName string
}

type DownloadService interface {
	// Authorize runs the entitlement chain for a download request.
	// It performs no storage I/O: every denial is decided before the
	// object store is ever contacted.
	Authorize(ctx context.Context, token, orderID, itemID, bundleName string) (*Authorization, error)
	// Fetch authorizes and then opens the asset's byte stream.
	Fetch(ctx context.Context, token, orderID, itemID, bundleName string) (*Download, error)
}

type downloadServiceImpl struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	store       storage.ObjectStore
	logger      *zap.Logger
}

func NewDownloadService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStore,
	logger *zap.Logger,
) DownloadService {
	return &downloadServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		store:       store,
		logger:      logger,
	}
}

// Authorize checks, in order and short-circuiting on the first failure:
// order exists, order is completed, the token maps to a live session,
// the session's account owns the order, the product exists, the product
// is a line item of the order, and (for a bundle request) the bundle
// exists under the license type that was purchased for this line.
// Bundle names match case-insensitively against the live catalog; the
// purchased license type comes from the order snapshot.
func (s *downloadServiceImpl) Authorize(ctx context.Context, token, orderID, itemID, bundleName string) (*Authorization, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}

	if order.Status != model.OrderCompleted {
		return nil, ErrOrderNotCompleted
	}

	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no matching session", ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve session token: %w", err)
	}

	// Only the purchasing account's own sessions may download, no
	// matter who presents the token.
	if user.Email != order.Email {
		return nil, fmt.Errorf("%w: order belongs to a different account", ErrUnauthorized)
	}

	product, err := s.productRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", itemID, err)
	}

	// A completed order only entitles its own line items.
	item, ok := order.FindItem(itemID)
	if !ok {
		return nil, ErrProductNotFound
	}

	if bundleName == "" {
		return &Authorization{
			Product:     product,
			FileKey:     product.Download,
			DisplayName: product.Name,
		}, nil
	}

	bundle, ok := product.FindBundle(item.LicenseType, bundleName)
	if !ok {
		return nil, ErrBundleNotFound
	}

	return &Authorization{
		Product:     product,
		FileKey:     bundle.Download,
		DisplayName: bundleName,
	}, nil
}

func (s *downloadServiceImpl) Fetch(ctx context.Context, token, orderID, itemID, bundleName string) (*Download, error) {
	auth, err := s.Authorize(ctx, token, orderID, itemID, bundleName)
	if err != nil {
		return nil, err
	}

	obj, err := s.store.Download(ctx, auth.FileKey)
	if err != nil {
		s.logger.Error("asset fetch failed",
			zap.String("order_id", orderID),
			zap.String("product_id", itemID),
			zap.String("file_key", auth.FileKey),
			zap.Error(err))
		return nil, fmt.Errorf("download asset %q: %w", auth.FileKey, err)
	}

	s.logger.Info("download authorized",
		zap.String("order_id", orderID),
		zap.String("product_id", itemID),
		zap.String("display_name", auth.DisplayName))

	return &Download{
		Object:      obj,
		DisplayName: auth.DisplayName,
	}, nil
}
