package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"digitalstore/internal/dto"
	"digitalstore/internal/service"
)

// respondError maps service failures onto the wire taxonomy: not-found
// outcomes are 404, authorization failures are 401, everything else is
// a generic 500 with no internal detail exposed.
func respondError(c echo.Context, err error) error {
	switch {
	case service.IsNotFound(err):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: rootMessage(err), Success: false})
	case service.IsUnauthorized(err):
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: rootMessage(err), Success: false})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "something went wrong, please try again later",
			Success: false,
		})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Success: false})
}

// rootMessage strips wrapping context so clients see only the sentinel
// text ("order not found"), not internal call-site detail.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		service.ErrOrderNotFound,
		service.ErrProductNotFound,
		service.ErrBundleNotFound,
		service.ErrOrderNotCompleted,
		service.ErrUnauthorized,
		service.ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
