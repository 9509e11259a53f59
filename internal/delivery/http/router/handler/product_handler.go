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

// ProductHandler holds dependencies for catalog-related handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

// ListProducts returns every active product.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"products": products}, "Products retrieved successfully")
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_PRODUCT_ID", "Invalid product id")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"product": product}, "Product retrieved successfully")
}

// CreateProduct creates a product owned by the acting vendor.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), actor, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{"product": product}, "Product created successfully")
}

// ListVendorProducts returns the acting vendor's own products.
func (h *ProductHandler) ListVendorProducts(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	products, err := h.uc.ListVendorProducts(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"products": products}, "Products retrieved successfully")
}
