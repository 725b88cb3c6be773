package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ierr "github.com/flexprice/billingsim/internal/errors"
)

var testFields = []string{"currency", "customer", "total"}

func TestParse(t *testing.T) {
	q, err := Parse(`customer:"cus_123"`, testFields)
	assert.NoError(t, err)
	assert.Len(t, q.Clauses, 1)
	assert.Equal(t, "customer", q.Clauses[0].Field)
	assert.Equal(t, "cus_123", q.Clauses[0].Value)

	q, err = Parse(`customer:"cus_123" AND currency:"usd"`, testFields)
	assert.NoError(t, err)
	assert.Len(t, q.Clauses, 2)

	// Quotes are optional.
	q, err = Parse(`total:4500`, testFields)
	assert.NoError(t, err)
	assert.Equal(t, "4500", q.Clauses[0].Value)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("", testFields)
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = Parse("   ", testFields)
	assert.Error(t, err)

	_, err = Parse(`no-colon-here`, testFields)
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = Parse(`status:"open"`, testFields)
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestMatches(t *testing.T) {
	q, err := Parse(`customer:"cus_123" AND currency:"usd"`, testFields)
	assert.NoError(t, err)

	assert.True(t, q.Matches(map[string]string{
		"customer": "cus_123",
		"currency": "usd",
		"total":    "4500",
	}))
	assert.False(t, q.Matches(map[string]string{
		"customer": "cus_123",
		"currency": "eur",
	}))
	assert.False(t, q.Matches(map[string]string{
		"currency": "usd",
	}))
}
