package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/statpage/metric-resolver/services/resolver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMetricsToml = `
[[Metrics]]
    Id = "total-datasets"
    Title = "Total datasets"
    Type = "numeric"
    [Metrics.Source.Primary]
        URL = "http://127.0.0.1:1"
        Format = "json"
        Selector = "response.numFound"
    [Metrics.Source.Fallback]
        Value = "307000"
        AsOf = "2025-01-20"
`

func createTestConfig(t *testing.T) config.Config {
	tempDir := t.TempDir()

	metricsFile := filepath.Join(tempDir, "metrics.toml")
	require.NoError(t, os.WriteFile(metricsFile, []byte(testMetricsToml), 0644))

	return config.Config{
		Name:                     "test-resolver",
		ListenAddress:            "127.0.0.1:0",
		MetricsFile:              metricsFile,
		DatabasePath:             filepath.Join(tempDir, "resolver.db"),
		RetentionSeconds:         3600,
		ResolveIntervalInSeconds: 3600,
		FetchTimeoutInSeconds:    5,
		MaxConcurrentFetches:     4,
	}
}

func TestNewComponentsHandler(t *testing.T) {
	t.Parallel()

	t.Run("should work", func(t *testing.T) {
		handler, err := NewComponentsHandler("service-key", createTestConfig(t))

		assert.NotNil(t, handler)
		assert.Nil(t, err)

		handler.Close()
	})
	t.Run("missing metrics file should error", func(t *testing.T) {
		cfg := createTestConfig(t)
		cfg.MetricsFile = filepath.Join(t.TempDir(), "missing.toml")

		handler, err := NewComponentsHandler("service-key", cfg)

		assert.Nil(t, handler)
		assert.Error(t, err)
	})
}

func TestComponentsHandlerMethods(t *testing.T) {
	t.Parallel()

	handler, err := NewComponentsHandler("service-key", createTestConfig(t))
	require.NoError(t, err)

	handler.Start()
	// a second Start call is a no-op
	handler.Start()

	reg := handler.GetRegistry()
	assert.Equal(t, "*registry.tomlRegistry", fmt.Sprintf("%T", reg))

	store := handler.GetStore()
	assert.Equal(t, "*storage.sqliteStorage", fmt.Sprintf("%T", store))

	engine := handler.GetEngine()
	assert.Equal(t, "*engine.resolverEngine", fmt.Sprintf("%T", engine))

	server := handler.GetServer()
	assert.Equal(t, "*api.server", fmt.Sprintf("%T", server))
	assert.NotEmpty(t, server.Address())

	handler.Close()
}
