package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/flexprice/billingsim/internal/types"
)

// RequestIDMiddleware tags every request with an id, generating one when
// the caller did not supply a header.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// AccountMiddleware scopes the request to the account named in the
// provider's account header. Requests without the header land in the
// default account.
func AccountMiddleware(c *gin.Context) {
	accountID := c.GetHeader(types.HeaderAccountID)
	if accountID == "" {
		accountID = types.DefaultAccountID
	}

	ctx := types.SetAccountID(c.Request.Context(), accountID)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}
