package docsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/statpage/metric-resolver/services/resolver/common"
)

var log = logger.GetOrCreate("docsync")

// SyncPayload is the body pushed to the document service. Metrics are keyed by
// metric id, so repeated calls with the same results are an idempotent upsert
// of the same placeholders.
type SyncPayload struct {
	DocumentID string                         `json:"documentId"`
	Metrics    map[string]common.MetricResult `json:"metrics"`
}

type httpDocSync struct {
	endpoint   string
	apiKey     string
	documentID string
	client     *http.Client
}

// NewHTTPDocSync creates a syncer that pushes resolved metrics into an external document
func NewHTTPDocSync(endpoint, apiKey, documentID string, timeout time.Duration) *httpDocSync {
	return &httpDocSync{
		endpoint:   endpoint,
		apiKey:     apiKey,
		documentID: documentID,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Sync replaces metric placeholders in the external document with the provided
// results. Failures are returned to the caller, never swallowed.
func (d *httpDocSync) Sync(ctx context.Context, results []common.MetricResult) error {
	payload := SyncPayload{
		DocumentID: d.documentID,
		Metrics:    make(map[string]common.MetricResult, len(results)),
	}

	for _, r := range results {
		payload.Metrics[r.MetricID] = r
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create sync request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error syncing document: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("document service rejected sync with status code: %d", resp.StatusCode)
	}

	log.Debug("successfully synced document", "document", d.documentID, "metrics_count", len(payload.Metrics))

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (d *httpDocSync) IsInterfaceNil() bool {
	return d == nil
}
