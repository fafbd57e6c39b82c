package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/statpage/metric-resolver/services/resolver/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolverEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil registry should error", func(t *testing.T) {
		engine, err := NewResolverEngine(nil, &testsCommon.BatchResolverStub{}, &testsCommon.StoreStub{}, &testsCommon.DocSyncStub{})

		assert.Nil(t, engine)
		assert.True(t, engine.IsInterfaceNil())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil registry")
	})
	t.Run("nil batch resolver should error", func(t *testing.T) {
		engine, err := NewResolverEngine(&testsCommon.RegistryStub{}, nil, &testsCommon.StoreStub{}, &testsCommon.DocSyncStub{})

		assert.Nil(t, engine)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil batch resolver")
	})
	t.Run("nil store should error", func(t *testing.T) {
		engine, err := NewResolverEngine(&testsCommon.RegistryStub{}, &testsCommon.BatchResolverStub{}, nil, &testsCommon.DocSyncStub{})

		assert.Nil(t, engine)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil store")
	})
	t.Run("nil doc sync is allowed", func(t *testing.T) {
		engine, err := NewResolverEngine(&testsCommon.RegistryStub{}, &testsCommon.BatchResolverStub{}, &testsCommon.StoreStub{}, nil)

		assert.NotNil(t, engine)
		assert.False(t, engine.IsInterfaceNil())
		assert.Nil(t, err)
	})
}

func TestResolverEngine_Process(t *testing.T) {
	t.Parallel()

	definitions := []common.MetricDefinition{{ID: "a"}, {ID: "b"}}
	resolved := []common.MetricResult{
		{MetricID: "a", Status: common.StatusSuccess},
		{MetricID: "b", Status: common.StatusStale, SourceUsed: common.TierFallback},
	}

	t.Run("resolves, persists and syncs", func(t *testing.T) {
		var savedResults []common.MetricResult
		var syncedResults []common.MetricResult

		registryStub := &testsCommon.RegistryStub{
			ListHandler: func() []common.MetricDefinition {
				return definitions
			},
		}
		batchStub := &testsCommon.BatchResolverStub{
			ResolveAllHandler: func(ctx context.Context, defs []common.MetricDefinition) []common.MetricResult {
				require.Equal(t, definitions, defs)
				return resolved
			},
		}
		storeStub := &testsCommon.StoreStub{
			SaveSnapshotHandler: func(ctx context.Context, results []common.MetricResult, takenAt int64) error {
				savedResults = results
				assert.Greater(t, takenAt, int64(0))
				return nil
			},
		}
		docSyncStub := &testsCommon.DocSyncStub{
			SyncHandler: func(ctx context.Context, results []common.MetricResult) error {
				syncedResults = results
				return nil
			},
		}

		engine, err := NewResolverEngine(registryStub, batchStub, storeStub, docSyncStub)
		require.NoError(t, err)

		engine.Process(context.Background())

		assert.Equal(t, resolved, savedResults)
		assert.Equal(t, resolved, syncedResults)
	})
	t.Run("store failure does not prevent doc sync", func(t *testing.T) {
		synced := false

		storeStub := &testsCommon.StoreStub{
			SaveSnapshotHandler: func(ctx context.Context, results []common.MetricResult, takenAt int64) error {
				return errors.New("disk full")
			},
		}
		docSyncStub := &testsCommon.DocSyncStub{
			SyncHandler: func(ctx context.Context, results []common.MetricResult) error {
				synced = true
				return nil
			},
		}

		engine, _ := NewResolverEngine(&testsCommon.RegistryStub{}, &testsCommon.BatchResolverStub{}, storeStub, docSyncStub)

		engine.Process(context.Background())

		assert.True(t, synced)
	})
	t.Run("sync failure is absorbed", func(t *testing.T) {
		docSyncStub := &testsCommon.DocSyncStub{
			SyncHandler: func(ctx context.Context, results []common.MetricResult) error {
				return errors.New("doc service down")
			},
		}

		engine, _ := NewResolverEngine(&testsCommon.RegistryStub{}, &testsCommon.BatchResolverStub{}, &testsCommon.StoreStub{}, docSyncStub)

		assert.NotPanics(t, func() {
			engine.Process(context.Background())
		})
	})
	t.Run("nil doc sync skips the sync phase", func(t *testing.T) {
		saved := false
		storeStub := &testsCommon.StoreStub{
			SaveSnapshotHandler: func(ctx context.Context, results []common.MetricResult, takenAt int64) error {
				saved = true
				return nil
			},
		}

		engine, _ := NewResolverEngine(&testsCommon.RegistryStub{}, &testsCommon.BatchResolverStub{}, storeStub, nil)

		engine.Process(context.Background())

		assert.True(t, saved)
	})
}
