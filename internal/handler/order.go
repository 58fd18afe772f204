package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"digitalstore/internal/dto"
	"digitalstore/internal/model"
	"digitalstore/internal/service"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
}

func NewOrderHandler(checkoutService service.CheckoutService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.checkoutService.Checkout(ctx, req.Token, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	order, err := h.checkoutService.Confirm(ctx, req.Token, req.OrderID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.Request().Header.Get("X-Session-Token")
	if token == "" {
		return badRequest(c, "missing X-Session-Token header")
	}

	orders, err := h.checkoutService.ListOrders(ctx, token)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// PayPalWebhook receives asynchronous capture notifications.
func (h *OrderHandler) PayPalWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "unreadable body")
	}

	var event model.PayPalWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return badRequest(c, "invalid webhook payload")
	}

	if err := h.checkoutService.HandlePaypalWebhook(ctx, &event); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
