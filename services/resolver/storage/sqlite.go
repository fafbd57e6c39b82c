package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/statpage/metric-resolver/services/resolver/common"
)

var log = logger.GetOrCreate("storage")

// ErrMetricNotFound signals that no result was ever recorded for a metric id
var ErrMetricNotFound = errors.New("metric not found")

// sqliteStorage persists resolution snapshots and the latest known result per
// metric id. The resolution pipeline is a pure producer; it never reads back.
type sqliteStorage struct {
	db               *sql.DB
	retentionSeconds int
	cancelFunc       context.CancelFunc
	wg               sync.WaitGroup
}

// NewSQLiteStorage creates the database, schema, and starts the retention cleaner
func NewSQLiteStorage(dbPath string, retentionSeconds int) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteStorage{
		db:               db,
		retentionSeconds: retentionSeconds,
		cancelFunc:       cancel,
	}

	s.startRetentionCleaner(ctx)

	return s, nil
}

func prepareDirectories(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}

	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_results (
		snapshot_id      INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		metric_id        TEXT    NOT NULL,
		value            TEXT    NOT NULL,
		raw_request_hash TEXT    NOT NULL,
		source_used      TEXT    NOT NULL,
		status           TEXT    NOT NULL,
		fetched_at       TEXT    NOT NULL,
		title            TEXT    NOT NULL DEFAULT '',
		description      TEXT    NOT NULL DEFAULT '',
		url              TEXT    NOT NULL DEFAULT '',
		method_used      TEXT    NOT NULL DEFAULT '',
		failover_reason  TEXT    NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS latest_results (
		metric_id        TEXT    NOT NULL PRIMARY KEY,
		value            TEXT    NOT NULL,
		raw_request_hash TEXT    NOT NULL,
		source_used      TEXT    NOT NULL,
		status           TEXT    NOT NULL,
		fetched_at       TEXT    NOT NULL,
		title            TEXT    NOT NULL DEFAULT '',
		description      TEXT    NOT NULL DEFAULT '',
		url              TEXT    NOT NULL DEFAULT '',
		method_used      TEXT    NOT NULL DEFAULT '',
		failover_reason  TEXT    NOT NULL DEFAULT '',
		recorded_at      INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshot_results_metric ON snapshot_results(metric_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveSnapshot stores a resolution batch as one timestamped snapshot and
// upserts the latest known result for every metric id in the batch
func (s *sqliteStorage) SaveSnapshot(ctx context.Context, results []common.MetricResult, takenAt int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "INSERT INTO snapshots (taken_at) VALUES (?)", takenAt)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read snapshot id: %w", err)
	}

	for _, r := range results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_results
				(snapshot_id, metric_id, value, raw_request_hash, source_used, status, fetched_at, title, description, url, method_used, failover_reason)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, snapshotID, r.MetricID, r.Value, r.RawRequestHash, r.SourceUsed, r.Status, r.FetchedAt,
			r.Meta.Title, r.Meta.Description, r.Meta.URL, r.Meta.MethodUsed, r.Meta.FailoverReason)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot result: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO latest_results
				(metric_id, value, raw_request_hash, source_used, status, fetched_at, title, description, url, method_used, failover_reason, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(metric_id) DO UPDATE SET
				value=excluded.value,
				raw_request_hash=excluded.raw_request_hash,
				source_used=excluded.source_used,
				status=excluded.status,
				fetched_at=excluded.fetched_at,
				title=excluded.title,
				description=excluded.description,
				url=excluded.url,
				method_used=excluded.method_used,
				failover_reason=excluded.failover_reason,
				recorded_at=excluded.recorded_at
		`, r.MetricID, r.Value, r.RawRequestHash, r.SourceUsed, r.Status, r.FetchedAt,
			r.Meta.Title, r.Meta.Description, r.Meta.URL, r.Meta.MethodUsed, r.Meta.FailoverReason, takenAt)
		if err != nil {
			return fmt.Errorf("failed to upsert latest result: %w", err)
		}
	}

	return tx.Commit()
}

// GetLatestResults fetches the most recent result recorded for each metric
func (s *sqliteStorage) GetLatestResults(ctx context.Context) ([]common.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric_id, value, raw_request_hash, source_used, status, fetched_at, title, description, url, method_used, failover_reason, recorded_at
		FROM latest_results
		ORDER BY metric_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []common.StoredResult
	for rows.Next() {
		stored, err := scanStoredResult(rows)
		if err != nil {
			return nil, err
		}

		results = append(results, stored)
	}

	return results, rows.Err()
}

// GetMetricHistory returns all retained snapshot entries for one metric,
// oldest first
func (s *sqliteStorage) GetMetricHistory(ctx context.Context, metricID string) ([]common.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.metric_id, r.value, r.raw_request_hash, r.source_used, r.status, r.fetched_at, r.title, r.description, r.url, r.method_used, r.failover_reason, s.taken_at
		FROM snapshot_results r
		JOIN snapshots s ON s.id = r.snapshot_id
		WHERE r.metric_id = ?
		ORDER BY s.taken_at
	`, metricID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var history []common.StoredResult
	for rows.Next() {
		stored, err := scanStoredResult(rows)
		if err != nil {
			return nil, err
		}

		history = append(history, stored)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	if len(history) == 0 {
		return nil, ErrMetricNotFound
	}

	return history, nil
}

func scanStoredResult(rows *sql.Rows) (common.StoredResult, error) {
	var stored common.StoredResult
	r := &stored.Result

	err := rows.Scan(&r.MetricID, &r.Value, &r.RawRequestHash, &r.SourceUsed, &r.Status, &r.FetchedAt,
		&r.Meta.Title, &r.Meta.Description, &r.Meta.URL, &r.Meta.MethodUsed, &r.Meta.FailoverReason, &stored.RecordedAt)
	if err != nil {
		return common.StoredResult{}, err
	}

	return stored, nil
}

func (s *sqliteStorage) cleanRetainedSnapshots(ctx context.Context) error {
	nowSec := time.Now().Unix()
	cutoff := nowSec - int64(s.retentionSeconds)
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE taken_at < ?", cutoff)
	return err
}

func (s *sqliteStorage) startRetentionCleaner(ctx context.Context) {
	s.wg.Add(1)

	// max(RetentionSeconds/10, 60)
	intervalSec := s.retentionSeconds / 10
	if intervalSec < 60 {
		intervalSec = 60
	}

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("running retention cleanup")

				err := s.cleanRetainedSnapshots(ctx)
				if err != nil {
					log.Warn("failed to cleanup retained snapshots", "error", err)
				}
			}
		}
	}()
}

// Close closes the database and stops background routines
func (s *sqliteStorage) Close() error {
	s.cancelFunc()
	s.wg.Wait()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
