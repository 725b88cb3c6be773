package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex in_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

// Provider-shaped id prefixes. These match the wire shape the real
// billing provider uses so assertions written against live ids keep
// passing against the simulator.
const (
	UUID_PREFIX_INVOICE           = "in"
	UUID_PREFIX_INVOICE_LINE_ITEM = "ii"
	UUID_PREFIX_SUBSCRIPTION      = "sub"
	UUID_PREFIX_CUSTOMER          = "cus"
	UUID_PREFIX_CHARGE            = "ch"
	UUID_PREFIX_PAYMENT_INTENT    = "pi"
	UUID_PREFIX_CARD_TOKEN        = "tok"
	UUID_PREFIX_PLAN              = "plan"
	UUID_PREFIX_PRICE             = "price"
)
