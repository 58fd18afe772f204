package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"digitalstore/internal/dto"
	"digitalstore/internal/model"
	"digitalstore/internal/repository"
)

type CatalogService interface {
	// ListVisible returns the storefront catalog. Hidden products are
	// omitted; hiding never affects already-purchased downloads.
	ListVisible(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	CreateProduct(ctx context.Context, in *dto.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, in *dto.ProductInput) (*model.Product, error)
	AddBundle(ctx context.Context, productID string, in *dto.BundleInput) (*model.Bundle, error)
	SetVisibility(ctx context.Context, productID string, visible bool) error
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListVisible(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindVisible(ctx)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", productID, err)
	}
	return product, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, in *dto.ProductInput) (*model.Product, error) {
	product, err := productFromInput(in)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID string, in *dto.ProductInput) (*model.Product, error) {
	existing, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	updated, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if in.IsVisible == nil {
		updated.IsVisible = existing.IsVisible
	}

	if err := s.productRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update product %s: %w", productID, err)
	}

	return updated, nil
}

func (s *catalogServiceImpl) AddBundle(ctx context.Context, productID string, in *dto.BundleInput) (*model.Bundle, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	licenseType := model.LicenseType(in.Type)
	if !licenseType.Valid() {
		return nil, fmt.Errorf("invalid license type %q", in.Type)
	}

	bundle := &model.Bundle{
		ID:          model.BundleIDFor(in.Name, licenseType),
		ProductID:   product.ID,
		Name:        in.Name,
		Type:        licenseType,
		Price:       in.Price,
		Description: in.Description,
		Download:    in.Download,
		Image:       in.Image,
		Position:    len(product.BundlesFor(licenseType)),
	}

	if _, exists := product.FindBundle(licenseType, in.Name); exists {
		return nil, fmt.Errorf("bundle %q already exists for %s license", in.Name, licenseType)
	}

	if err := s.productRepo.AddBundle(ctx, bundle); err != nil {
		return nil, fmt.Errorf("add bundle to product %s: %w", productID, err)
	}

	return bundle, nil
}

func (s *catalogServiceImpl) SetVisibility(ctx context.Context, productID string, visible bool) error {
	err := s.productRepo.SetVisibility(ctx, productID, visible)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("set visibility on product %s: %w", productID, err)
	}
	return nil
}

func productFromInput(in *dto.ProductInput) (*model.Product, error) {
	if len(in.Images) > model.MaxProductImages {
		return nil, fmt.Errorf("at most %d product images allowed", model.MaxProductImages)
	}

	caption := model.ProductCaption(in.Caption)
	if caption == "" {
		caption = model.CaptionProduct
	}

	visible := true
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}

	return &model.Product{
		ID:              in.ID,
		Name:            in.Name,
		Tagline:         in.Tagline,
		Description:     in.Description,
		Category:        model.ProductCategory(in.Category),
		Caption:         caption,
		Tags:            in.Tags,
		Images:          in.Images,
		Download:        in.Download,
		PersonalPrice:   in.PersonalPrice,
		CommercialPrice: in.CommercialPrice,
		IsVisible:       visible,
	}, nil
}
