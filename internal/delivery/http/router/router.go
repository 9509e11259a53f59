// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"
	"bazaar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	CartHandler    *handler.CartHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	AddressHandler *handler.AddressHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	cartHandler    *handler.CartHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	addressHandler *handler.AddressHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		cartHandler:    params.CartHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		addressHandler: params.AddressHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Public catalog routes
	e.GET("/products", r.productHandler.ListProducts)
	e.GET("/products/:id", r.productHandler.GetProduct)

	// Vendor catalog routes
	vendorProductGroup := e.Group("/products")
	vendorProductGroup.Use(r.authMiddleware.Authenticate)
	vendorProductGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor))
	{
		vendorProductGroup.POST("", r.productHandler.CreateProduct)
		vendorProductGroup.GET("/vendor", r.productHandler.ListVendorProducts)
	}

	// Cart routes, authenticated users only
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.DELETE("/items/:productID", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Address book
	addressGroup := e.Group("/addresses")
	addressGroup.Use(r.authMiddleware.Authenticate)
	{
		addressGroup.GET("", r.addressHandler.ListMyAddresses)
	}

	// Customer order routes
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("/checkout", r.orderHandler.Checkout)
		orderGroup.GET("/my", r.orderHandler.ListMyOrders)
		orderGroup.GET("/my/:id", r.orderHandler.GetMyOrder)
		orderGroup.GET("/my/:id/qr", r.orderHandler.GetMyOrderQR)
	}

	// Vendor order routes. Admins may act on the vendor surface as well.
	vendorGroup := e.Group("/orders/vendor")
	vendorGroup.Use(r.authMiddleware.Authenticate)
	vendorGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor, entity.RoleAdmin))
	{
		vendorGroup.GET("", r.orderHandler.ListVendorOrders)
		vendorGroup.PATCH("/:id/status", r.orderHandler.UpdateVendorOrderStatus)
	}

	// Admin order routes
	adminGroup := e.Group("/orders/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("", r.orderHandler.ListAllOrders)
		adminGroup.PATCH("/:id", r.orderHandler.UpdateAdminOrderStatus)
	}
}
