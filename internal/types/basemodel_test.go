package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultBaseModel(t *testing.T) {
	bm := GetDefaultBaseModel("acct_123")
	assert.Equal(t, "acct_123", bm.AccountID)
	assert.Equal(t, StatusPublished, bm.Status)
	assert.False(t, bm.CreatedAt.IsZero())
	assert.Equal(t, bm.CreatedAt, bm.UpdatedAt)
}
