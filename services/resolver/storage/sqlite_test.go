package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(id, value string) common.MetricResult {
	return common.MetricResult{
		MetricID:       id,
		Value:          value,
		RawRequestHash: "hash-" + value,
		SourceUsed:     common.TierPrimary,
		FetchedAt:      "2025-02-01T10:00:00Z",
		Status:         common.StatusSuccess,
		Meta: common.ResultMeta{
			Title:      "Title " + id,
			URL:        "http://source/" + id,
			MethodUsed: "GET",
		},
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Parallel()

	t.Run("in-memory database", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:", 100)

		require.NoError(t, err)
		assert.False(t, store.IsInterfaceNil())
		require.NoError(t, store.Close())
	})
	t.Run("creates missing directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "resolver.db")

		store, err := NewSQLiteStorage(dbPath, 100)

		require.NoError(t, err)
		require.NoError(t, store.Close())
	})
}

func TestSQLiteStorage_SaveSnapshotAndQuery(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStorage(":memory:", 3600)
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()

	err = store.SaveSnapshot(ctx, []common.MetricResult{
		testResult("metric-a", "1"),
		testResult("metric-b", "10"),
	}, 1000)
	require.NoError(t, err)

	err = store.SaveSnapshot(ctx, []common.MetricResult{
		testResult("metric-a", "2"),
	}, 2000)
	require.NoError(t, err)

	t.Run("latest results hold the newest value per metric", func(t *testing.T) {
		latest, err := store.GetLatestResults(ctx)
		require.NoError(t, err)
		require.Len(t, latest, 2)

		byID := make(map[string]common.StoredResult)
		for _, stored := range latest {
			byID[stored.Result.MetricID] = stored
		}

		assert.Equal(t, "2", byID["metric-a"].Result.Value)
		assert.Equal(t, int64(2000), byID["metric-a"].RecordedAt)
		assert.Equal(t, "10", byID["metric-b"].Result.Value)
		assert.Equal(t, int64(1000), byID["metric-b"].RecordedAt)
	})
	t.Run("history returns all snapshots oldest first", func(t *testing.T) {
		history, err := store.GetMetricHistory(ctx, "metric-a")
		require.NoError(t, err)
		require.Len(t, history, 2)

		assert.Equal(t, "1", history[0].Result.Value)
		assert.Equal(t, int64(1000), history[0].RecordedAt)
		assert.Equal(t, "2", history[1].Result.Value)
		assert.Equal(t, int64(2000), history[1].RecordedAt)
	})
	t.Run("meta fields survive the round trip", func(t *testing.T) {
		history, err := store.GetMetricHistory(ctx, "metric-b")
		require.NoError(t, err)
		require.Len(t, history, 1)

		result := history[0].Result
		assert.Equal(t, "Title metric-b", result.Meta.Title)
		assert.Equal(t, "http://source/metric-b", result.Meta.URL)
		assert.Equal(t, "GET", result.Meta.MethodUsed)
		assert.Equal(t, common.TierPrimary, result.SourceUsed)
		assert.Equal(t, common.StatusSuccess, result.Status)
		assert.Equal(t, "hash-10", result.RawRequestHash)
	})
	t.Run("unknown metric history returns not found", func(t *testing.T) {
		_, err := store.GetMetricHistory(ctx, "missing")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMetricNotFound))
	})
}

func TestSQLiteStorage_Retention(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStorage(":memory:", 100)
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()

	// way older than the retention window
	err = store.SaveSnapshot(ctx, []common.MetricResult{testResult("metric-a", "1")}, 1000)
	require.NoError(t, err)

	err = store.cleanRetainedSnapshots(ctx)
	require.NoError(t, err)

	_, err = store.GetMetricHistory(ctx, "metric-a")
	assert.True(t, errors.Is(err, ErrMetricNotFound))

	// latest known result is kept even after its snapshot expired
	latest, err := store.GetLatestResults(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}
