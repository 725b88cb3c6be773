package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/flexprice/billingsim/internal/config"
	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/paymentintent"
	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/domain/price"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	"github.com/flexprice/billingsim/internal/logger"
	"github.com/flexprice/billingsim/internal/store"
	"github.com/flexprice/billingsim/internal/types"
	"github.com/flexprice/billingsim/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo       invoice.Repository
	CustomerRepo      customer.Repository
	SubscriptionRepo  subscription.Repository
	PlanRepo          plan.Repository
	PriceRepo         price.Repository
	ChargeRepo        charge.Repository
	PaymentIntentRepo paymentintent.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		InvoiceRepo:       store.NewInMemoryInvoiceStore(),
		CustomerRepo:      store.NewInMemoryCustomerStore(),
		SubscriptionRepo:  store.NewInMemorySubscriptionStore(),
		PlanRepo:          store.NewInMemoryPlanStore(),
		PriceRepo:         store.NewInMemoryPriceStore(),
		ChargeRepo:        store.NewInMemoryChargeStore(),
		PaymentIntentRepo: store.NewInMemoryPaymentIntentStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	for _, repo := range []any{
		s.stores.InvoiceRepo,
		s.stores.CustomerRepo,
		s.stores.SubscriptionRepo,
		s.stores.PlanRepo,
		s.stores.PriceRepo,
		s.stores.ChargeRepo,
		s.stores.PaymentIntentRepo,
	} {
		if c, ok := repo.(interface{ Clear() }); ok {
			c.Clear()
		}
	}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetAccountID returns the account the test context runs under
func (s *BaseServiceTestSuite) GetAccountID() string {
	return types.GetAccountID(s.ctx)
}
