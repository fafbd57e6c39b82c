package api

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// Storage defines the interface for querying persisted resolution results
type Storage interface {
	// GetLatestResults returns the latest known result for every metric id
	GetLatestResults(ctx context.Context) ([]common.StoredResult, error)

	// GetMetricHistory returns all retained snapshot entries for one metric
	GetMetricHistory(ctx context.Context, metricID string) ([]common.StoredResult, error)

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}

// Registry defines the read surface of the metric definition registry
type Registry interface {
	// List returns all metric definitions
	List() []common.MetricDefinition

	// Get returns the definition for the provided metric id
	Get(id string) (common.MetricDefinition, error)

	IsInterfaceNil() bool
}

// Trigger defines an entity able to run one resolution round on demand
type Trigger interface {
	Process(ctx context.Context)
	IsInterfaceNil() bool
}
