package charge

import (
	"github.com/cockroachdb/errors"
)

// ErrNoSource signals that a customer has no default payment source on
// file. Callers decide the fallback; the invoice engine responds by
// charging a freshly generated card token.
var ErrNoSource = errors.New("customer has no default payment source")
