// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for checkout and order-related handlers.
type OrderHandler struct {
	checkoutUC usecase.CheckoutUsecase
	orderUC    usecase.OrderUsecase
	qrSvc      service.QRCodeService
	logger     *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(checkoutUC usecase.CheckoutUsecase, orderUC usecase.OrderUsecase, qrSvc service.QRCodeService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkoutUC: checkoutUC,
		orderUC:    orderUC,
		qrSvc:      qrSvc,
		logger:     logger,
	}
}

// Checkout converts the acting user's cart into one order per vendor.
func (h *OrderHandler) Checkout(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input usecase.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	output, err := h.checkoutUC.Checkout(c.Request().Context(), actor, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order placed successfully")
}

// ListMyOrders returns the customer's own orders, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orders, err := h.orderUC.ListMyOrders(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"orders": orders}, "Orders retrieved successfully")
}

// GetMyOrder returns one of the customer's own orders with full history.
func (h *OrderHandler) GetMyOrder(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order id")
	}

	order, err := h.orderUC.GetMyOrder(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"order": order}, "Order retrieved successfully")
}

// GetMyOrderQR renders a PNG QR code encoding the order reference for
// handover. Ownership is checked the same way as GetMyOrder.
func (h *OrderHandler) GetMyOrderQR(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order id")
	}

	order, err := h.orderUC.GetMyOrder(c.Request().Context(), actor, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrSvc.GenerateOrderQR(order.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListVendorOrders returns the orders owned by the acting vendor.
func (h *OrderHandler) ListVendorOrders(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orders, err := h.orderUC.ListVendorOrders(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"orders": orders}, "Orders retrieved successfully")
}

// UpdateVendorOrderStatus applies a status transition to an order the acting
// vendor owns. Someone else's order is indistinguishable from a missing one.
func (h *OrderHandler) UpdateVendorOrderStatus(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order id")
	}

	var input usecase.UpdateStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status update input")
	}

	order, err := h.orderUC.UpdateStatusAsVendor(c.Request().Context(), actor, orderID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"order": order}, "Order status updated")
}

// ListAllOrders returns every order on the platform. Admin only.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.orderUC.ListAllOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"orders": orders}, "Orders retrieved successfully")
}

// UpdateAdminOrderStatus applies a status transition to any order by id.
func (h *OrderHandler) UpdateAdminOrderStatus(c echo.Context) error {
	actor, ok := middleware.ActorFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ORDER_ID", "Invalid order id")
	}

	var input usecase.UpdateStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status update input")
	}

	order, err := h.orderUC.UpdateStatusAsAdmin(c.Request().Context(), actor, orderID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"order": order}, "Order updated successfully")
}
