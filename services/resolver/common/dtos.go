package common

// MetricType governs how strictly a resolved value is validated
type MetricType string

const (
	// MetricTypeNumeric marks metrics whose value must look like a number
	MetricTypeNumeric MetricType = "numeric"
	// MetricTypeText marks free-form textual metrics
	MetricTypeText MetricType = "text"
)

// SourceFormat describes how a fetched response body should be decoded
type SourceFormat string

const (
	// FormatJSON - the body is a JSON document, selectors are dot paths
	FormatJSON SourceFormat = "json"
	// FormatText - the body is used verbatim, selectors do not apply
	FormatText SourceFormat = "text"
	// FormatHTML - the body is markup, selectors are css expressions
	FormatHTML SourceFormat = "html"
	// FormatXML - treated as markup, same selector handling as html
	FormatXML SourceFormat = "xml"
)

// SourceTier identifies which failover tier produced a result
type SourceTier string

const (
	// TierPrimary is the preferred live source
	TierPrimary SourceTier = "primary"
	// TierArchived is the archival mirror, tried after the primary fails
	TierArchived SourceTier = "archived"
	// TierFallback is the static, always-succeeding last resort
	TierFallback SourceTier = "fallback"
)

// ResultStatus marks whether a result is live or served from the static fallback
type ResultStatus string

const (
	// StatusSuccess - a network tier produced the value
	StatusSuccess ResultStatus = "success"
	// StatusStale - the static fallback produced the value
	StatusStale ResultStatus = "stale"
)

// FallbackHash is the rawRequestHash recorded when no network call succeeded
const FallbackHash = "fallback"

// SourceSpec describes one network retrieval for a metric tier
type SourceSpec struct {
	URL      string            `toml:"URL" json:"url"`
	Method   string            `toml:"Method" json:"method"`
	Headers  map[string]string `toml:"Headers" json:"headers,omitempty"`
	Body     string            `toml:"Body" json:"body,omitempty"`
	Format   SourceFormat      `toml:"Format" json:"format"`
	Selector string            `toml:"Selector" json:"selector,omitempty"`
}

// FallbackSpec is the static terminal tier of a metric
type FallbackSpec struct {
	Value string `toml:"Value" json:"value"`
	AsOf  string `toml:"AsOf" json:"asOf"`
}

// SourceConfig groups the failover tiers of one metric
type SourceConfig struct {
	Primary  SourceSpec   `toml:"Primary" json:"primary"`
	Archived *SourceSpec  `toml:"Archived" json:"archived,omitempty"`
	Fallback FallbackSpec `toml:"Fallback" json:"fallback"`
}

// NormalizationSpec names the transform applied to a raw extracted value.
// Regex is orthogonal to the strategy: when it matches, the value is replaced
// with the first capture group.
type NormalizationSpec struct {
	Strategy string `toml:"Strategy" json:"strategy,omitempty"`
	Regex    string `toml:"Regex" json:"regex,omitempty"`
}

// MetricDefinition is one immutable, registry-supplied resolution rule
type MetricDefinition struct {
	ID            string             `toml:"Id" json:"id"`
	Title         string             `toml:"Title" json:"title"`
	Description   string             `toml:"Description" json:"description"`
	Type          MetricType         `toml:"Type" json:"type"`
	Source        SourceConfig       `toml:"Source" json:"source"`
	Normalization *NormalizationSpec `toml:"Normalization" json:"normalization,omitempty"`
}

// ResultMeta carries the provenance annotations of a resolution
type ResultMeta struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	MethodUsed     string `json:"methodUsed"`
	FailoverReason string `json:"failoverReason,omitempty"`
}

// MetricResult is the single validated outcome of resolving one metric
type MetricResult struct {
	MetricID       string       `json:"metricId"`
	Value          string       `json:"value"`
	RawRequestHash string       `json:"rawRequestHash"`
	SourceUsed     SourceTier   `json:"sourceUsed"`
	FetchedAt      string       `json:"fetchedAt"`
	Status         ResultStatus `json:"status"`
	Meta           ResultMeta   `json:"meta"`
}

// FetchOutcome carries one tier's raw response body and the selector-extracted value.
// Found is false when the selector soft-failed (missing key, zero markup matches).
type FetchOutcome struct {
	RawBody string
	Value   string
	Found   bool
}

// StoredResult pairs a persisted MetricResult with the snapshot time it was recorded at
type StoredResult struct {
	Result     MetricResult `json:"result"`
	RecordedAt int64        `json:"recordedAt"`
}
