package engine

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// Registry defines the external collaborator that supplies immutable metric definitions
type Registry interface {
	// List returns all metric definitions
	List() []common.MetricDefinition

	IsInterfaceNil() bool
}

// BatchResolver defines the interface for resolving all metric definitions at once
type BatchResolver interface {
	// ResolveAll returns exactly one result per definition and cannot fail
	ResolveAll(ctx context.Context, definitions []common.MetricDefinition) []common.MetricResult

	IsInterfaceNil() bool
}

// Store defines the interface for persisting resolution snapshots
type Store interface {
	// SaveSnapshot stores a resolution batch and updates the latest result per metric id
	SaveSnapshot(ctx context.Context, results []common.MetricResult, takenAt int64) error

	IsInterfaceNil() bool
}

// DocSync defines the interface for pushing resolved metrics into an external document
type DocSync interface {
	// Sync performs an idempotent placeholder replacement with the provided results.
	// Failures must be reported to the caller rather than silently swallowed.
	Sync(ctx context.Context, results []common.MetricResult) error

	IsInterfaceNil() bool
}
