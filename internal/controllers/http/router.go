package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Daud2712/E-Commerce-sub000/internal/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Products   *ProductHandler
	Orders     *OrderHandler
	Deliveries *DeliveryHandler
	Payments   *PaymentHandler
	Expenses   *ExpenseHandler
	Reports    *ReportHandler
	Users      *UserHandler
	Tokens     *auth.TokenService
	Log        *slog.Logger
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.Log), Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	r.GET("/products", h.Products.List)
	r.GET("/products/:id", h.Products.Get)

	// Public tracking lookup; :id is the tracking number here.
	r.GET("/deliveries/:id", h.Deliveries.Track)

	r.POST("/payments/callback", h.Payments.Callback)

	authed := r.Group("/", RequireAuth(h.Tokens))

	authed.GET("/products/mine", h.Products.ListMine)
	authed.POST("/products", h.Products.Create)
	authed.PUT("/products/:id", h.Products.Update)
	authed.DELETE("/products/:id", h.Products.Delete)

	authed.POST("/orders/checkout", h.Orders.Checkout)
	authed.GET("/orders/my-orders", h.Orders.MyOrders)
	authed.GET("/orders", h.Orders.SellerOrders)
	authed.GET("/orders/:id", h.Orders.Get)
	authed.PUT("/orders/:id/status", h.Orders.UpdateStatus)
	authed.PUT("/orders/:id/confirm-receipt", h.Orders.ConfirmReceipt)
	authed.DELETE("/orders/:id", h.Orders.Cancel)

	authed.POST("/deliveries", h.Deliveries.Create)
	authed.GET("/deliveries", h.Deliveries.Owned)
	authed.GET("/deliveries/buyer", h.Deliveries.BuyerDeliveries)
	authed.GET("/deliveries/rider", h.Deliveries.RiderDeliveries)
	authed.PUT("/deliveries/:id/assign-rider", h.Deliveries.AssignRider)
	authed.PUT("/deliveries/:id/accept", h.Deliveries.Accept)
	authed.PUT("/deliveries/:id/reject", h.Deliveries.Reject)
	authed.PUT("/deliveries/:id/status", h.Deliveries.UpdateStatus)
	authed.PUT("/deliveries/:id/receive", h.Deliveries.Receive)
	authed.PUT("/deliveries/:id/unreceive", h.Deliveries.Unreceive)
	authed.DELETE("/deliveries/:id", h.Deliveries.Delete)

	authed.POST("/payments/initiate", h.Payments.Initiate)

	authed.GET("/expenses", h.Expenses.List)
	authed.POST("/expenses", h.Expenses.Create)
	authed.PUT("/expenses/:id", h.Expenses.Update)
	authed.DELETE("/expenses/:id", h.Expenses.Delete)

	authed.GET("/reports/financial", h.Reports.FinancialSummary)

	authed.GET("/users", h.Users.List)
	authed.PUT("/users/:id/approve", h.Users.Approve)

	return r
}
