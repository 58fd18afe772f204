package repository

import (
	"context"

	"gorm.io/gorm"

	"digitalstore/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindVisible(ctx context.Context) ([]*model.Product, error)
	AddBundle(ctx context.Context, bundle *model.Bundle) error
	SetVisibility(ctx context.Context, productID string, visible bool) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Bundles", func(db *gorm.DB) *gorm.DB {
			return db.Order("bundles.position ASC, bundles.created_at ASC")
		}).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindVisible(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Bundles", func(db *gorm.DB) *gorm.DB {
			return db.Order("bundles.position ASC, bundles.created_at ASC")
		}).
		Where("is_visible = ?", true).
		Order("created_at DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) AddBundle(ctx context.Context, bundle *model.Bundle) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *productRepoImpl) SetVisibility(ctx context.Context, productID string, visible bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("is_visible", visible)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
