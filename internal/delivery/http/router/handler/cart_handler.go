// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart-related handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

// GetCart returns the acting user's current cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// AddItem adds a product line to the cart or replaces its quantity.
func (h *CartHandler) AddItem(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input usecase.AddCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	if err := h.uc.AddItem(c.Request().Context(), actor, &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item added to cart")
}

// RemoveItem removes one product line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_PRODUCT_ID", "Invalid product id")
	}

	if err := h.uc.RemoveItem(c.Request().Context(), actor, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removed from cart")
}

// ClearCart removes every line from the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.uc.ClearCart(c.Request().Context(), actor); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
