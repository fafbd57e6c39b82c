package testsCommon

import (
	"context"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// FetcherStub -
type FetcherStub struct {
	FetchHandler func(ctx context.Context, spec common.SourceSpec) (common.FetchOutcome, error)
}

// Fetch -
func (stub *FetcherStub) Fetch(ctx context.Context, spec common.SourceSpec) (common.FetchOutcome, error) {
	if stub.FetchHandler != nil {
		return stub.FetchHandler(ctx, spec)
	}

	return common.FetchOutcome{}, nil
}

// IsInterfaceNil -
func (stub *FetcherStub) IsInterfaceNil() bool {
	return stub == nil
}
