package validator

import (
	"strings"
	"unicode"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

// maxNumericLength - a numeric value longer than this is read as a failed
// extraction that dumped structured data instead of a scalar
const maxNumericLength = 100

// leakMarkers indicate a selector mismatch that returned raw page markup
var leakMarkers = []string{"<!doctype", "<html", "<body", "<div"}

// IsValid sanity-checks a normalized value against the metric's declared type.
// It runs once per tier attempt, after normalization, before a tier's result
// is accepted.
func IsValid(value string, metricType common.MetricType) bool {
	if value == "" {
		return false
	}

	lowered := strings.ToLower(value)
	for _, marker := range leakMarkers {
		if strings.Contains(lowered, marker) {
			return false
		}
	}

	if metricType == common.MetricTypeNumeric {
		if !strings.ContainsFunc(value, unicode.IsDigit) {
			return false
		}
		if len(value) > maxNumericLength {
			return false
		}
	}

	return true
}
