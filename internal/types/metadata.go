package types

// Metadata represents a free-form key-value bag callers can attach to
// simulated resources.
type Metadata map[string]string

// Merge merges the other metadata into a copy of m, other taking precedence.
func (m Metadata) Merge(other Metadata) Metadata {
	out := make(Metadata, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
