// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/Benmwania/ecomart/internal/delivery/http/middleware"
	"github.com/Benmwania/ecomart/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler           *handler.AuthHandler
	CatalogHandler        *handler.CatalogHandler
	CartHandler           *handler.CartHandler
	OrderHandler          *handler.OrderHandler
	CheckoutHandler       *handler.CheckoutHandler
	RecommendationHandler *handler.RecommendationHandler
	SellerHandler         *handler.SellerHandler
	SessionMiddleware     *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	auth            *handler.AuthHandler
	catalog         *handler.CatalogHandler
	cart            *handler.CartHandler
	orders          *handler.OrderHandler
	checkout        *handler.CheckoutHandler
	recommendations *handler.RecommendationHandler
	seller          *handler.SellerHandler
	session         *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:            params.AuthHandler,
		catalog:         params.CatalogHandler,
		cart:            params.CartHandler,
		orders:          params.OrderHandler,
		checkout:        params.CheckoutHandler,
		recommendations: params.RecommendationHandler,
		seller:          params.SellerHandler,
		session:         params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application. The
// session middleware runs on every group; access control stays in the
// usecases, so anonymous requests reach public routes unhindered.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	e.Use(r.session.Resolve)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.auth.Register)
		authGroup.POST("/login", r.auth.Login)
		authGroup.POST("/logout", r.auth.Logout)
		authGroup.GET("/profile", r.auth.Profile)
		authGroup.PUT("/profile", r.auth.UpdateProfile)
	}

	// Public catalog routes
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.catalog.Products)
		productGroup.GET("/categories", r.catalog.Categories)
		productGroup.GET("/featured", r.catalog.Featured)
		productGroup.GET("/:id", r.catalog.Product)
		productGroup.POST("/:id/reviews", r.catalog.AddReview)
		productGroup.GET("/:id/similar", r.recommendations.Similar)
	}

	// Cart routes, session required by the usecase
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cart.View)
		cartGroup.POST("/items", r.cart.AddItem)
		cartGroup.PUT("/items/:productId", r.cart.UpdateItem)
		cartGroup.DELETE("/items/:productId", r.cart.RemoveItem)
		cartGroup.DELETE("", r.cart.Clear)
	}

	// Order history routes
	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("", r.orders.Orders)
		orderGroup.GET("/:id", r.orders.Order)
		orderGroup.POST("/:id/cancel", r.orders.Cancel)
	}

	// Checkout wizard routes
	checkoutGroup := e.Group("/checkout")
	{
		checkoutGroup.GET("", r.checkout.Begin)
		checkoutGroup.POST("/shipping", r.checkout.SubmitShipping)
		checkoutGroup.POST("/payment", r.checkout.SubmitPayment)
		checkoutGroup.GET("/paypal/return", r.checkout.PaypalReturn)
		checkoutGroup.POST("/place-order", r.checkout.PlaceOrder)
	}

	// Discovery routes backed by the AI engine with local fallbacks
	e.GET("/recommendations", r.recommendations.Recommendations)
	e.GET("/trending-products", r.recommendations.Trending)
	e.POST("/eco-score/calculate", r.recommendations.EcoScore)
	e.GET("/sustainability-insights", r.recommendations.Insights)

	// Seller routes, seller account required by the usecase
	sellerGroup := e.Group("/seller")
	{
		sellerGroup.GET("/dashboard", r.seller.Dashboard)
		sellerGroup.GET("/products", r.seller.Products)
		sellerGroup.POST("/products", r.seller.CreateProduct)
		sellerGroup.GET("/products/:id", r.seller.Product)
		sellerGroup.PUT("/products/:id", r.seller.UpdateProduct)
		sellerGroup.DELETE("/products/:id", r.seller.DeleteProduct)
		sellerGroup.GET("/orders", r.seller.Orders)
		sellerGroup.PATCH("/orders/:id", r.seller.UpdateOrderStatus)
		sellerGroup.GET("/analytics", r.seller.Analytics)
	}
}
