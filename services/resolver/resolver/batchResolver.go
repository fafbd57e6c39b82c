package resolver

import (
	"context"
	"errors"
	"sync"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/statpage/metric-resolver/services/resolver/common"
)

type batchResolver struct {
	resolver MetricResolver
}

// NewBatchResolver creates a resolver that fans out over full definition sets
func NewBatchResolver(r MetricResolver) (*batchResolver, error) {
	if check.IfNil(r) {
		return nil, errors.New("nil metric resolver")
	}

	return &batchResolver{
		resolver: r,
	}, nil
}

// ResolveAll resolves all definitions concurrently and returns one result per
// definition. Resolutions share no mutable state; a slow or failing metric
// cannot block or fail the batch. Result order is not guaranteed to match
// input order.
func (b *batchResolver) ResolveAll(ctx context.Context, definitions []common.MetricDefinition) []common.MetricResult {
	results := make([]common.MetricResult, 0, len(definitions))
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(len(definitions))
	for _, def := range definitions {
		go func(definition common.MetricDefinition) {
			defer wg.Done()

			result := b.resolver.Resolve(ctx, definition)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(def)
	}

	wg.Wait()
	return results
}

// IsInterfaceNil returns true if the value under the interface is nil
func (b *batchResolver) IsInterfaceNil() bool {
	return b == nil
}
