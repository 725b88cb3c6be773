package types

// Status is a type for the lifecycle status of a stored resource.
// Simulated resources are never hard-deleted; they are flipped to
// StatusDeleted and filtered out of reads.
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
)

type RunMode string

const (
	// ModeLocal is the default mode for running the simulator locally
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
