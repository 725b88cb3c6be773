package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/flexprice/billingsim/internal/api/v1"
	"github.com/flexprice/billingsim/internal/config"
	"github.com/flexprice/billingsim/internal/logger"
	"github.com/flexprice/billingsim/internal/rest/middleware"
	"github.com/flexprice/billingsim/internal/types"
)

type Handlers struct {
	Invoice      *v1.InvoiceHandler
	Customer     *v1.CustomerHandler
	Plan         *v1.PlanHandler
	Price        *v1.PriceHandler
	Subscription *v1.SubscriptionHandler
	Payment      *v1.PaymentHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Logging.Level != types.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.AccountMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Invoice routes. Static paths register before parameterized ones so
	// /upcoming and /search never bind as ids.
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/upcoming", handlers.Invoice.GetUpcomingInvoice)
		invoices.GET("/search", handlers.Invoice.SearchInvoices)
		invoices.GET("/:id/lines", handlers.Invoice.GetInvoiceLineItems)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id", handlers.Invoice.UpdateInvoice)
		invoices.POST("/:id/pay", handlers.Invoice.PayInvoice)
		invoices.POST("/:id/add_lines", handlers.Invoice.AddInvoiceLines)
		invoices.POST("/:id/finalize", handlers.Invoice.FinalizeInvoice)
	}

	// Customer routes
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.POST("/:id", handlers.Customer.UpdateCustomer)
	}

	// Plan routes
	plans := router.Group("/plans")
	{
		plans.POST("", handlers.Plan.CreatePlan)
		plans.GET("", handlers.Plan.ListPlans)
		plans.GET("/:id", handlers.Plan.GetPlan)
	}

	// Price routes
	prices := router.Group("/prices")
	{
		prices.POST("", handlers.Price.CreatePrice)
		prices.GET("/:id", handlers.Price.GetPrice)
	}

	// Subscription routes
	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("", handlers.Subscription.CreateSubscription)
		subscriptions.GET("", handlers.Subscription.ListSubscriptions)
		subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
		subscriptions.POST("/:id", handlers.Subscription.UpdateSubscription)
	}

	// Payment routes
	router.GET("/charges/:id", handlers.Payment.GetCharge)
	router.GET("/payment_intents/:id", handlers.Payment.GetPaymentIntent)
}
