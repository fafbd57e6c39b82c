package validator

import (
	"strings"
	"testing"

	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	t.Run("accepts plain numeric value", func(t *testing.T) {
		assert.True(t, IsValid("42", common.MetricTypeNumeric))
	})
	t.Run("accepts formatted numeric value", func(t *testing.T) {
		assert.True(t, IsValid("1,234", common.MetricTypeNumeric))
	})
	t.Run("accepts text value", func(t *testing.T) {
		assert.True(t, IsValid("operational", common.MetricTypeText))
	})
	t.Run("rejects empty value", func(t *testing.T) {
		assert.False(t, IsValid("", common.MetricTypeNumeric))
		assert.False(t, IsValid("", common.MetricTypeText))
	})
	t.Run("rejects leaked document root regardless of type", func(t *testing.T) {
		leaked := "<!DOCTYPE html><html><body>oops</body></html>"

		assert.False(t, IsValid(leaked, common.MetricTypeNumeric))
		assert.False(t, IsValid(leaked, common.MetricTypeText))
	})
	t.Run("rejects div leakage", func(t *testing.T) {
		assert.False(t, IsValid(`<DIV class="x">7</DIV>`, common.MetricTypeNumeric))
	})
	t.Run("rejects digit-free numeric value", func(t *testing.T) {
		assert.False(t, IsValid("not available", common.MetricTypeNumeric))
	})
	t.Run("digit-free text value is fine", func(t *testing.T) {
		assert.True(t, IsValid("not available", common.MetricTypeText))
	})
	t.Run("rejects overlong numeric value", func(t *testing.T) {
		long := "1" + strings.Repeat("a", 120)

		assert.False(t, IsValid(long, common.MetricTypeNumeric))
		assert.True(t, IsValid(long, common.MetricTypeText))
	})
	t.Run("boundary numeric length is accepted", func(t *testing.T) {
		assert.True(t, IsValid(strings.Repeat("9", 100), common.MetricTypeNumeric))
		assert.False(t, IsValid(strings.Repeat("9", 101), common.MetricTypeNumeric))
	})
}
