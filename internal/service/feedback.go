package service

import (
	"context"
	"fmt"

	"digitalstore/internal/dto"
	"digitalstore/internal/model"
	"digitalstore/internal/repository"
)

type FeedbackService interface {
	CreateReview(ctx context.Context, req *dto.CreateReviewRequest) (*model.Review, error)
	ListReviews(ctx context.Context, productID string) ([]*model.Review, error)
	CreateContact(ctx context.Context, req *dto.CreateContactRequest) (*model.Contact, error)
	// ListContacts returns every submitted message, newest first.
	ListContacts(ctx context.Context) ([]*model.Contact, error)
}

type feedbackServiceImpl struct {
	reviewRepo  repository.ReviewRepository
	contactRepo repository.ContactRepository
	productRepo repository.ProductRepository
}

func NewFeedbackService(
	reviewRepo repository.ReviewRepository,
	contactRepo repository.ContactRepository,
	productRepo repository.ProductRepository,
) FeedbackService {
	return &feedbackServiceImpl{
		reviewRepo:  reviewRepo,
		contactRepo: contactRepo,
		productRepo: productRepo,
	}
}

func (s *feedbackServiceImpl) CreateReview(ctx context.Context, req *dto.CreateReviewRequest) (*model.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	review := &model.Review{
		ProductID: req.ProductID,
		Name:      req.Name,
		Email:     req.Email,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

func (s *feedbackServiceImpl) ListReviews(ctx context.Context, productID string) ([]*model.Review, error) {
	return s.reviewRepo.FindByProductID(ctx, productID)
}

func (s *feedbackServiceImpl) CreateContact(ctx context.Context, req *dto.CreateContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	return contact, nil
}

func (s *feedbackServiceImpl) ListContacts(ctx context.Context) ([]*model.Contact, error) {
	return s.contactRepo.FindAll(ctx)
}
