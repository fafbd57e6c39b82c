package engine

import (
	"context"
	"errors"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/statpage/metric-resolver/services/resolver/common"
)

const (
	resolveTimeout = 30 * time.Second
	saveTimeout    = 10 * time.Second
	syncTimeout    = 10 * time.Second
)

var log = logger.GetOrCreate("engine")

// resolverEngine orchestrates one full resolution round: list definitions,
// resolve them all, snapshot the results and push them to the document service
type resolverEngine struct {
	registry Registry
	resolver BatchResolver
	store    Store
	docSync  DocSync
}

// NewResolverEngine creates a new engine instance. docSync may be nil, in
// which case document synchronization is skipped.
func NewResolverEngine(reg Registry, res BatchResolver, store Store, docSync DocSync) (*resolverEngine, error) {
	if check.IfNil(reg) {
		return nil, errors.New("nil registry")
	}
	if check.IfNil(res) {
		return nil, errors.New("nil batch resolver")
	}
	if check.IfNil(store) {
		return nil, errors.New("nil store")
	}

	return &resolverEngine{
		registry: reg,
		resolver: res,
		store:    store,
		docSync:  docSync,
	}, nil
}

// Process resolves every registered metric and records the outcome. Resolution
// itself cannot fail; persistence and sync errors are logged and do not affect
// the resolved results.
func (e *resolverEngine) Process(ctx context.Context) {
	definitions := e.registry.List()
	log.Debug("waking up to resolve metrics", "count", len(definitions))

	resolveCtx, cancelResolve := context.WithTimeout(ctx, resolveTimeout)
	defer cancelResolve()
	results := e.resolver.ResolveAll(resolveCtx, definitions)

	stale := 0
	for _, r := range results {
		if r.Status == common.StatusStale {
			stale++
		}
	}
	log.Debug("finished resolving", "results", len(results), "stale", stale)

	saveCtx, cancelSave := context.WithTimeout(ctx, saveTimeout)
	defer cancelSave()

	err := e.store.SaveSnapshot(saveCtx, results, time.Now().Unix())
	if err != nil {
		log.Warn("failed to persist resolution snapshot", "error", err)
	}

	if check.IfNil(e.docSync) {
		return
	}

	syncCtx, cancelSync := context.WithTimeout(ctx, syncTimeout)
	defer cancelSync()

	err = e.docSync.Sync(syncCtx, results)
	if err != nil {
		log.Warn("failed to sync metrics into the document", "error", err)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *resolverEngine) IsInterfaceNil() bool {
	return e == nil
}
