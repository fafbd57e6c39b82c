package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/statpage/metric-resolver/services/resolver/normalizer"
	"github.com/statpage/metric-resolver/services/resolver/selector"
	"github.com/statpage/metric-resolver/services/resolver/validator"
)

const (
	reasonSeparator     = " | "
	manualSourcePrefix  = "Manual "
	manualSourceGeneric = "Manual Verification / Estimate"
	fallbackMethod      = "manual"
	maxReasonValueLen   = 64
)

var log = logger.GetOrCreate("resolver")

type metricResolver struct {
	fetcher Fetcher
}

// NewMetricResolver creates a new tiered failover resolver
func NewMetricResolver(f Fetcher) (*metricResolver, error) {
	if check.IfNil(f) {
		return nil, errors.New("nil fetcher")
	}

	return &metricResolver{
		fetcher: f,
	}, nil
}

// Resolve runs the primary -> archived -> fallback sequence for one metric and
// returns a single formatted result. It never returns an error: failures are
// recorded as failover reasons and the static fallback terminates the chain.
func (r *metricResolver) Resolve(ctx context.Context, definition common.MetricDefinition) common.MetricResult {
	var reasons []string

	result, ok := r.tryTier(ctx, definition, definition.Source.Primary, common.TierPrimary, &reasons)
	if ok {
		return result
	}

	if definition.Source.Archived != nil {
		result, ok = r.tryTier(ctx, definition, *definition.Source.Archived, common.TierArchived, &reasons)
		if ok {
			return result
		}
	}

	return r.fallbackResult(definition, reasons)
}

// tryTier fetches, normalizes and validates one network tier. Any failure is
// appended to reasons and reported through the boolean, never as an error.
func (r *metricResolver) tryTier(
	ctx context.Context,
	definition common.MetricDefinition,
	spec common.SourceSpec,
	tier common.SourceTier,
	reasons *[]string,
) (common.MetricResult, bool) {
	outcome, err := r.fetcher.Fetch(ctx, spec)
	if err != nil {
		var selErr *selector.SelectorError
		if errors.As(err, &selErr) {
			log.Warn("malformed selector in metric registry", "metric", definition.ID, "tier", tier, "error", err)
		}

		*reasons = append(*reasons, string(tier)+": "+err.Error())
		return common.MetricResult{}, false
	}

	if !outcome.Found {
		*reasons = append(*reasons, string(tier)+": selector matched no value")
		return common.MetricResult{}, false
	}

	value := normalizer.Normalize(outcome.Value, definition.Normalization)
	if !validator.IsValid(value, definition.Type) {
		*reasons = append(*reasons, string(tier)+": validation failed: "+truncateValue(value))
		return common.MetricResult{}, false
	}

	return common.MetricResult{
		MetricID:       definition.ID,
		Value:          value,
		RawRequestHash: hashRawContent(outcome.RawBody),
		SourceUsed:     tier,
		FetchedAt:      time.Now().UTC().Format(time.RFC3339),
		Status:         common.StatusSuccess,
		Meta: common.ResultMeta{
			Title:          definition.Title,
			Description:    definition.Description,
			URL:            spec.URL,
			MethodUsed:     methodOf(spec),
			FailoverReason: strings.Join(*reasons, reasonSeparator),
		},
	}, true
}

// fallbackResult is the terminal, non-failing branch. The recorded timestamp
// is the fallback's as_of, not the current time.
func (r *metricResolver) fallbackResult(definition common.MetricDefinition, reasons []string) common.MetricResult {
	fallback := definition.Source.Fallback

	url := manualSourceGeneric
	if definition.Source.Primary.URL != "" {
		url = manualSourcePrefix + definition.Source.Primary.URL
	} else if definition.Source.Archived != nil && definition.Source.Archived.URL != "" {
		url = manualSourcePrefix + definition.Source.Archived.URL
	}

	return common.MetricResult{
		MetricID:       definition.ID,
		Value:          fallback.Value,
		RawRequestHash: common.FallbackHash,
		SourceUsed:     common.TierFallback,
		FetchedAt:      fallback.AsOf,
		Status:         common.StatusStale,
		Meta: common.ResultMeta{
			Title:          definition.Title,
			Description:    definition.Description,
			URL:            url,
			MethodUsed:     fallbackMethod,
			FailoverReason: strings.Join(reasons, reasonSeparator),
		},
	}
}

// hashRawContent fingerprints the pre-normalization tier output so consumers
// can detect upstream content changes between resolutions
func hashRawContent(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func methodOf(spec common.SourceSpec) string {
	if spec.Method == "" {
		return http.MethodGet
	}

	return spec.Method
}

func truncateValue(value string) string {
	if len(value) <= maxReasonValueLen {
		return value
	}

	return value[:maxReasonValueLen] + "..."
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *metricResolver) IsInterfaceNil() bool {
	return r == nil
}
