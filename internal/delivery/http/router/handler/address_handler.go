// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AddressHandler holds dependencies for address-book handlers.
type AddressHandler struct {
	uc     usecase.AddressUsecase
	logger *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler, injected by Fx.
func NewAddressHandler(uc usecase.AddressUsecase, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{uc: uc, logger: logger}
}

// ListMyAddresses returns the acting user's saved addresses.
func (h *AddressHandler) ListMyAddresses(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	addresses, err := h.uc.ListMyAddresses(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"addresses": addresses}, "Addresses retrieved successfully")
}
