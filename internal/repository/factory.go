// Package repository wires the domain repository interfaces to their
// in-memory implementations. The simulator has no database; the keyed
// maps in internal/store are the single source of truth.
package repository

import (
	"github.com/flexprice/billingsim/internal/domain/charge"
	"github.com/flexprice/billingsim/internal/domain/customer"
	"github.com/flexprice/billingsim/internal/domain/invoice"
	"github.com/flexprice/billingsim/internal/domain/paymentintent"
	"github.com/flexprice/billingsim/internal/domain/plan"
	"github.com/flexprice/billingsim/internal/domain/price"
	"github.com/flexprice/billingsim/internal/domain/subscription"
	"github.com/flexprice/billingsim/internal/store"
)

func NewInvoiceRepository() invoice.Repository {
	return store.NewInMemoryInvoiceStore()
}

func NewCustomerRepository() customer.Repository {
	return store.NewInMemoryCustomerStore()
}

func NewSubscriptionRepository() subscription.Repository {
	return store.NewInMemorySubscriptionStore()
}

func NewPlanRepository() plan.Repository {
	return store.NewInMemoryPlanStore()
}

func NewPriceRepository() price.Repository {
	return store.NewInMemoryPriceStore()
}

func NewChargeRepository() charge.Repository {
	return store.NewInMemoryChargeStore()
}

func NewPaymentIntentRepository() paymentintent.Repository {
	return store.NewInMemoryPaymentIntentStore()
}
