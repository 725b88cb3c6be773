// Package search implements the provider's search query mini-language
// far enough for simulator purposes: exact-match field clauses joined by
// AND, with optional double quotes around values.
package search

import (
	"strings"

	"github.com/samber/lo"

	ierr "github.com/flexprice/billingsim/internal/errors"
)

// Clause is a single field:"value" term.
type Clause struct {
	Field string
	Value string
}

// Query is a parsed search query. All clauses must match (AND
// semantics); OR and negation are not modeled.
type Query struct {
	Clauses []Clause
}

// Parse parses a query string like `customer:"cus_123" AND currency:"usd"`.
// Fields outside the allowlist fail validation, matching the provider's
// behavior of rejecting unknown search fields per resource.
func Parse(query string, allowedFields []string) (*Query, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ierr.NewError("missing search query").
			WithHint("Missing required param: query").
			Mark(ierr.ErrValidation)
	}

	q := &Query{}
	for _, term := range strings.Split(query, " AND ") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		field, value, found := strings.Cut(term, ":")
		if !found {
			return nil, ierr.NewError("malformed search query").
				WithHintf("could not parse search term %q", term).
				Mark(ierr.ErrValidation)
		}
		field = strings.TrimSpace(field)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if !lo.Contains(allowedFields, field) {
			return nil, ierr.NewError("unsupported search field").
				WithHintf("field %q is not searchable on this resource", field).
				Mark(ierr.ErrValidation)
		}
		q.Clauses = append(q.Clauses, Clause{Field: field, Value: value})
	}

	if len(q.Clauses) == 0 {
		return nil, ierr.NewError("empty search query").
			WithHint("Missing required param: query").
			Mark(ierr.ErrValidation)
	}
	return q, nil
}

// Matches reports whether a resource, flattened into field name to
// string value pairs, satisfies every clause of the query.
func (q *Query) Matches(fields map[string]string) bool {
	for _, clause := range q.Clauses {
		if fields[clause.Field] != clause.Value {
			return false
		}
	}
	return true
}
