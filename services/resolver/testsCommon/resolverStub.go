package testsCommon

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// MetricResolverStub -
type MetricResolverStub struct {
	ResolveHandler func(ctx context.Context, definition common.MetricDefinition) common.MetricResult
}

// Resolve -
func (stub *MetricResolverStub) Resolve(ctx context.Context, definition common.MetricDefinition) common.MetricResult {
	if stub.ResolveHandler != nil {
		return stub.ResolveHandler(ctx, definition)
	}

	return common.MetricResult{}
}

// IsInterfaceNil -
func (stub *MetricResolverStub) IsInterfaceNil() bool {
	return stub == nil
}

// BatchResolverStub -
type BatchResolverStub struct {
	ResolveAllHandler func(ctx context.Context, definitions []common.MetricDefinition) []common.MetricResult
}

// ResolveAll -
func (stub *BatchResolverStub) ResolveAll(ctx context.Context, definitions []common.MetricDefinition) []common.MetricResult {
	if stub.ResolveAllHandler != nil {
		return stub.ResolveAllHandler(ctx, definitions)
	}

	return make([]common.MetricResult, 0)
}

// IsInterfaceNil -
func (stub *BatchResolverStub) IsInterfaceNil() bool {
	return stub == nil
}
