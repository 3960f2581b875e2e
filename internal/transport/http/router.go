package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharmaketan/shopkart/internal/handlers"
	authmw "github.com/sharmaketan/shopkart/internal/middleware/auth"
	"github.com/sharmaketan/shopkart/internal/policy"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	LogsHandler     *handlers.LogsHandler
	SearchHandler   *handlers.SearchHandler
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/signup", d.AuthHandler.Signup)
	v1.POST("/login", d.AuthHandler.Login)

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/categories", d.CategoryHandler.List)
	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	login := authmw.RequireLogin(d.JWTSecret)
	authed := v1.Group("", login)

	authed.POST("/products/:id/reviews", d.ProductHandler.AddReview)
	authed.DELETE("/products/:productId/reviews/:reviewId", d.ProductHandler.DeleteReview)

	cart := authed.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("", d.CartHandler.UpdateCart)
	cart.DELETE("/:productId", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	orders := authed.Group("/orders")
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("/my-orders", d.OrderHandler.MyOrders)
	orders.GET("/:orderId", d.OrderHandler.GetOrder)
	orders.PUT("/:orderId/cancel", d.OrderHandler.CancelOrder)

	users := authed.Group("/users")
	users.GET("", d.UserHandler.List, authmw.RequirePolicy(policy.ViewUsers))
	users.PUT("/update-password", d.UserHandler.UpdatePassword)
	users.GET("/:id", d.UserHandler.Get)
	users.DELETE("/:id", d.UserHandler.Delete)

	admin := authed.Group("/admin")

	adminProducts := admin.Group("/products", authmw.RequirePolicy(policy.ManageProducts))
	adminProducts.POST("", d.ProductHandler.CreateProduct)
	adminProducts.PUT("/:id", d.ProductHandler.UpdateProduct)
	adminProducts.DELETE("/:id", d.ProductHandler.DeleteProduct)

	adminCategories := admin.Group("/categories", authmw.RequirePolicy(policy.ManageCategories))
	adminCategories.POST("", d.CategoryHandler.Create)

	adminOrders := admin.Group("/orders", authmw.RequirePolicy(policy.ViewAllOrders))
	adminOrders.GET("", d.OrderHandler.ListAllOrders)
	adminOrders.PUT("/:orderId/status", d.OrderHandler.UpdateOrderStatus)

	adminLogs := admin.Group("/logs", authmw.RequirePolicy(policy.ManageLogs))
	adminLogs.GET("", d.LogsHandler.List)
	adminLogs.DELETE("", d.LogsHandler.Clear)
}
