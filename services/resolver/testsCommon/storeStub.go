package testsCommon

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// StoreStub -
type StoreStub struct {
	SaveSnapshotHandler     func(ctx context.Context, results []common.MetricResult, takenAt int64) error
	GetLatestResultsHandler func(ctx context.Context) ([]common.StoredResult, error)
	GetMetricHistoryHandler func(ctx context.Context, metricID string) ([]common.StoredResult, error)
	CloseHandler            func() error
}

// SaveSnapshot -
func (stub *StoreStub) SaveSnapshot(ctx context.Context, results []common.MetricResult, takenAt int64) error {
	if stub.SaveSnapshotHandler != nil {
		return stub.SaveSnapshotHandler(ctx, results, takenAt)
	}

	return nil
}

// GetLatestResults -
func (stub *StoreStub) GetLatestResults(ctx context.Context) ([]common.StoredResult, error) {
	if stub.GetLatestResultsHandler != nil {
		return stub.GetLatestResultsHandler(ctx)
	}

	return make([]common.StoredResult, 0), nil
}

// GetMetricHistory -
func (stub *StoreStub) GetMetricHistory(ctx context.Context, metricID string) ([]common.StoredResult, error) {
	if stub.GetMetricHistoryHandler != nil {
		return stub.GetMetricHistoryHandler(ctx, metricID)
	}

	return make([]common.StoredResult, 0), nil
}

// Close -
func (stub *StoreStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StoreStub) IsInterfaceNil() bool {
	return stub == nil
}
