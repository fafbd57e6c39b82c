package registry

import (
	"fmt"
	"net/http"

	"github.com/multiversx/mx-chain-core-go/core"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/statpage/metric-resolver/services/resolver/normalizer"
)

var log = logger.GetOrCreate("registry")

// MetricsFile maps to the metrics.toml definitions file
type MetricsFile struct {
	Metrics []common.MetricDefinition `toml:"Metrics"`
}

// tomlRegistry hands out immutable metric definitions loaded from a TOML file
type tomlRegistry struct {
	definitions []common.MetricDefinition
	byID        map[string]common.MetricDefinition
}

// NewTomlRegistry loads, validates and indexes the metric definitions file
func NewTomlRegistry(filepath string) (*tomlRegistry, error) {
	metricsFile := &MetricsFile{}
	err := core.LoadTomlFile(metricsFile, filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics file '%s': %w", filepath, err)
	}

	return NewRegistryFromDefinitions(metricsFile.Metrics)
}

// NewRegistryFromDefinitions validates and indexes an in-memory definition set
func NewRegistryFromDefinitions(definitions []common.MetricDefinition) (*tomlRegistry, error) {
	byID := make(map[string]common.MetricDefinition, len(definitions))
	prepared := make([]common.MetricDefinition, 0, len(definitions))

	for _, def := range definitions {
		err := validateDefinition(def)
		if err != nil {
			return nil, err
		}

		_, exists := byID[def.ID]
		if exists {
			return nil, errDuplicateMetricID(def.ID)
		}

		applyDefaults(&def)
		warnOnFragileNormalization(def)

		byID[def.ID] = def
		prepared = append(prepared, def)
	}

	return &tomlRegistry{
		definitions: prepared,
		byID:        byID,
	}, nil
}

func validateDefinition(def common.MetricDefinition) error {
	if def.ID == "" {
		return errInvalidDefinition("empty id")
	}
	if def.Type != common.MetricTypeNumeric && def.Type != common.MetricTypeText {
		return errInvalidDefinition(def.ID + ": type must be numeric or text")
	}
	if def.Source.Primary.URL == "" {
		return errInvalidDefinition(def.ID + ": primary source URL is required")
	}
	if def.Source.Fallback.Value == "" {
		return errInvalidDefinition(def.ID + ": fallback value is required")
	}

	return nil
}

func applyDefaults(def *common.MetricDefinition) {
	normalizeSpec(&def.Source.Primary)
	if def.Source.Archived != nil {
		archived := *def.Source.Archived
		normalizeSpec(&archived)
		def.Source.Archived = &archived
	}
}

func normalizeSpec(spec *common.SourceSpec) {
	if spec.Method == "" {
		spec.Method = http.MethodGet
	}
	if spec.Format == "" {
		spec.Format = common.FormatJSON
	}
}

// warnOnFragileNormalization surfaces strategy names the pipeline will treat
// as no-ops, so registry authoring bugs do not pass silently
func warnOnFragileNormalization(def common.MetricDefinition) {
	_, err := normalizer.ParseSpec(def.Normalization)
	if err != nil {
		log.Warn("metric normalization will not be applied", "metric", def.ID, "error", err)
	}
}

// List returns all metric definitions in registry order
func (r *tomlRegistry) List() []common.MetricDefinition {
	out := make([]common.MetricDefinition, len(r.definitions))
	copy(out, r.definitions)

	return out
}

// Get returns the definition for the provided metric id
func (r *tomlRegistry) Get(id string) (common.MetricDefinition, error) {
	def, exists := r.byID[id]
	if !exists {
		return common.MetricDefinition{}, errMetricNotFound(id)
	}

	return def, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *tomlRegistry) IsInterfaceNil() bool {
	return r == nil
}
