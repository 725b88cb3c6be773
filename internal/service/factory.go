package service

import (
	"github.com/flexprice/billingsim/internal/config"
	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/paymentintent"
	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/domain/price"
	"github.com/flexprice/billingsim/internal/domain/proration"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	"github.com/flexprice/billingsim/internal/logger"
)

// ServiceParams holds common dependencies for services. Every service
// embeds it so construction stays uniform and adding a dependency only
// touches this struct.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	InvoiceRepo       invoice.Repository
	CustomerRepo      customer.Repository
	SubscriptionRepo  subscription.Repository
	PlanRepo          plan.Repository
	PriceRepo         price.Repository
	ChargeRepo        charge.Repository
	PaymentIntentRepo paymentintent.Repository

	// Calculators
	ProrationCalculator proration.Calculator
}

// NewServiceParams assembles the common service dependencies.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	invoiceRepo invoice.Repository,
	customerRepo customer.Repository,
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	priceRepo price.Repository,
	chargeRepo charge.Repository,
	paymentIntentRepo paymentintent.Repository,
	prorationCalculator proration.Calculator,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		InvoiceRepo:         invoiceRepo,
		CustomerRepo:        customerRepo,
		SubscriptionRepo:    subscriptionRepo,
		PlanRepo:            planRepo,
		PriceRepo:           priceRepo,
		ChargeRepo:          chargeRepo,
		PaymentIntentRepo:   paymentIntentRepo,
		ProrationCalculator: prorationCalculator,
	}
}
