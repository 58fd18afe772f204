package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"digitalstore/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByToken resolves the user holding a currently-valid session
	// token. Expired tokens never match, even if not yet pruned.
	FindByToken(ctx context.Context, token string) (*model.User, error)
	AddToken(ctx context.Context, userID uint, token *model.SessionToken) error
	RemoveToken(ctx context.Context, token string) error
	PruneExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByToken(ctx context.Context, token string) (*model.User, error) {
	cutoff := time.Now().Add(-model.SessionTokenTTL)

	var user model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN session_tokens ON session_tokens.user_id = users.id").
		Where("session_tokens.token = ? AND session_tokens.created_at > ?", token, cutoff).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) AddToken(ctx context.Context, userID uint, token *model.SessionToken) error {
	token.UserID = userID
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *userRepoImpl) RemoveToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.SessionToken{}).Error
}

func (r *userRepoImpl) PruneExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-model.SessionTokenTTL)

	result := r.db.WithContext(ctx).
		Where("created_at <= ?", cutoff).
		Delete(&model.SessionToken{})

	return result.RowsAffected, result.Error
}
