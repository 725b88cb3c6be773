package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/flexprice/billingsim/internal/api"
	v1 "github.com/flexprice/billingsim/internal/api/v1"
	"github.com/flexprice/billingsim/internal/config"
	"github.com/flexprice/billingsim/internal/domain/proration"
	"github.com/flexprice/billingsim/internal/logger"
	"github.com/flexprice/billingsim/internal/repository"
	"github.com/flexprice/billingsim/internal/service"
	"github.com/flexprice/billingsim/internal/validator"
)

// @title BillingSim API
// @version 1.0
// @description In-memory billing provider simulator
// @BasePath /v1
// @schemes http

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewCustomerRepository,
			repository.NewSubscriptionRepository,
			repository.NewPlanRepository,
			repository.NewPriceRepository,
			repository.NewChargeRepository,
			repository.NewPaymentIntentRepository,

			// Calculators
			proration.NewCalculator,

			// Services
			service.NewServiceParams,
			service.NewInvoiceService,
			service.NewUpcomingInvoiceService,
			service.NewCustomerService,
			service.NewPlanService,
			service.NewPriceService,
			service.NewSubscriptionService,
			service.NewChargeService,
			service.NewPaymentIntentService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	invoiceService service.InvoiceService,
	upcomingService service.UpcomingInvoiceService,
	customerService service.CustomerService,
	planService service.PlanService,
	priceService service.PriceService,
	subscriptionService service.SubscriptionService,
	chargeService service.ChargeService,
	paymentIntentService service.PaymentIntentService,
) api.Handlers {
	return api.Handlers{
		Invoice:      v1.NewInvoiceHandler(invoiceService, upcomingService, logger),
		Customer:     v1.NewCustomerHandler(customerService, logger),
		Plan:         v1.NewPlanHandler(planService, logger),
		Price:        v1.NewPriceHandler(priceService, logger),
		Subscription: v1.NewSubscriptionHandler(subscriptionService, logger),
		Payment:      v1.NewPaymentHandler(chargeService, paymentIntentService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return server.Shutdown(ctx)
		},
	})
}
