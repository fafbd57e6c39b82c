package testsCommon

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// DocSyncStub -
type DocSyncStub struct {
	SyncHandler func(ctx context.Context, results []common.MetricResult) error
}

// Sync -
func (stub *DocSyncStub) Sync(ctx context.Context, results []common.MetricResult) error {
	if stub.SyncHandler != nil {
		return stub.SyncHandler(ctx, results)
	}

	return nil
}

// IsInterfaceNil -
func (stub *DocSyncStub) IsInterfaceNil() bool {
	return stub == nil
}
