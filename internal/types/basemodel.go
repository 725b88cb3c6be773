package types

import (
	"time"
)

// BaseModel is embedded by every simulated resource. AccountID scopes the
// resource to the provider account it was created under.
type BaseModel struct {
	AccountID string    `json:"account_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func GetDefaultBaseModel(accountID string) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		AccountID: accountID,
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
