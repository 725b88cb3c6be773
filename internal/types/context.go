package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxAccountID ContextKey = "ctx_account_id"

	// DefaultAccountID is the account every request falls into when no
	// account header is supplied. Tests against a single simulator
	// instance almost always live here.
	DefaultAccountID = "acct_default"

	HeaderRequestID = "X-Request-ID"
	HeaderAccountID = "Stripe-Account"
)

func GetAccountID(ctx context.Context) string {
	if accountID, ok := ctx.Value(CtxAccountID).(string); ok && accountID != "" {
		return accountID
	}
	return DefaultAccountID
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func SetAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, CtxAccountID, accountID)
}
