package types

import (
	"time"

	ierr "github.com/flexprice/billingsim/internal/errors"
)

// BillingInterval is the unit of a plan's billing cycle.
type BillingInterval string

const (
	BillingIntervalDay   BillingInterval = "day"
	BillingIntervalWeek  BillingInterval = "week"
	BillingIntervalMonth BillingInterval = "month"
	BillingIntervalYear  BillingInterval = "year"
)

func (i BillingInterval) String() string {
	return string(i)
}

func (i BillingInterval) Validate() error {
	switch i {
	case BillingIntervalDay, BillingIntervalWeek, BillingIntervalMonth, BillingIntervalYear:
		return nil
	}
	return ierr.NewError("invalid billing interval").
		WithHintf("billing interval must be one of day, week, month or year, got %q", i).
		Mark(ierr.ErrValidation)
}

// NextBillingTime returns the unix timestamp `cycles` billing cycles of
// `count` intervals each after start. Month and year cycles use calendar
// arithmetic so a Jan 31 anchor behaves the way the provider's does.
func (i BillingInterval) NextBillingTime(start int64, count int, cycles int) int64 {
	if count <= 0 {
		count = 1
	}
	t := time.Unix(start, 0).UTC()
	n := count * cycles
	switch i {
	case BillingIntervalDay:
		return t.AddDate(0, 0, n).Unix()
	case BillingIntervalWeek:
		return t.AddDate(0, 0, 7*n).Unix()
	case BillingIntervalMonth:
		return t.AddDate(0, n, 0).Unix()
	case BillingIntervalYear:
		return t.AddDate(n, 0, 0).Unix()
	}
	return start
}
