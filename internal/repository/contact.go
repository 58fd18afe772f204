package repository

import (
	"context"

	"gorm.io/gorm"

	"digitalstore/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindAll(ctx context.Context) ([]*model.Contact, error)
}

type contactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepoImpl{
		db: db,
	}
}

func (r *contactRepoImpl) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepoImpl) FindAll(ctx context.Context) ([]*model.Contact, error) {
	var contacts []*model.Contact
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&contacts).Error

	if err != nil {
		return nil, err
	}

	return contacts, nil
}
