package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"digitalstore/internal/model"
	"digitalstore/internal/repository"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	// ResolveUser maps a live session token to its account.
	ResolveUser(ctx context.Context, token string) (*model.User, error)
}

type authServiceImpl struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authServiceImpl) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("email", email))

	return s.issueToken(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	return s.userRepo.RemoveToken(ctx, token)
}

func (s *authServiceImpl) ResolveUser(ctx context.Context, token string) (*model.User, error) {
	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no matching session", ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve session token: %w", err)
	}
	return user, nil
}

func (s *authServiceImpl) issueToken(ctx context.Context, user *model.User) (*Session, error) {
	token := &model.SessionToken{
		Token:     uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.AddToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	return &Session{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt(),
	}, nil
}
