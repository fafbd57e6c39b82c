package resolver

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// Fetcher defines the interface for retrieving one source tier's content
type Fetcher interface {
	// Fetch performs one HTTP request for the source spec and extracts the selected value.
	// A soft selector miss is reported through FetchOutcome.Found, not as an error.
	Fetch(ctx context.Context, spec common.SourceSpec) (common.FetchOutcome, error)

	IsInterfaceNil() bool
}

// MetricResolver defines the per-metric tiered failover operation
type MetricResolver interface {
	// Resolve produces exactly one MetricResult for the definition. It never fails:
	// every tier error is absorbed into a failover transition, degrading to the
	// static fallback in the worst case.
	Resolve(ctx context.Context, definition common.MetricDefinition) common.MetricResult

	IsInterfaceNil() bool
}
