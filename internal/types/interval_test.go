package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBillingTime(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC).Unix()

	assert.Equal(t,
		time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC).Unix(),
		BillingIntervalDay.NextBillingTime(start, 1, 1))

	assert.Equal(t,
		time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC).Unix(),
		BillingIntervalWeek.NextBillingTime(start, 1, 2))

	assert.Equal(t,
		time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC).Unix(),
		BillingIntervalMonth.NextBillingTime(start, 1, 1))

	// Two cycles of three months.
	assert.Equal(t,
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC).Unix(),
		BillingIntervalMonth.NextBillingTime(start, 3, 2))

	assert.Equal(t,
		time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC).Unix(),
		BillingIntervalYear.NextBillingTime(start, 1, 1))
}

func TestBillingIntervalValidate(t *testing.T) {
	for _, interval := range []BillingInterval{
		BillingIntervalDay, BillingIntervalWeek, BillingIntervalMonth, BillingIntervalYear,
	} {
		assert.NoError(t, interval.Validate())
	}
	assert.Error(t, BillingInterval("fortnight").Validate())
}
