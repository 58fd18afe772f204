package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"digitalstore/internal/dto"
	"digitalstore/internal/service"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	review, err := h.feedbackService.CreateReview(ctx, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *FeedbackHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.feedbackService.ListReviews(ctx, c.Param("productId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *FeedbackHandler) CreateContact(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	contact, err := h.feedbackService.CreateContact(ctx, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, contact)
}

func (h *FeedbackHandler) ListContacts(c echo.Context) error {
	ctx := c.Request().Context()

	contacts, err := h.feedbackService.ListContacts(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, contacts)
}
