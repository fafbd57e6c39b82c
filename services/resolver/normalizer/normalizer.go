package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/statpage/metric-resolver/services/resolver/common"
)

const csvRowCountName = "csv_row_count"

// Strategy enumerates the closed set of supported value transforms. Registry
// entries declare strategies by name; the names are parsed into this enum once
// and never interpreted as code.
type Strategy int

const (
	// StrategyNone leaves the value untouched
	StrategyNone Strategy = iota
	// StrategyCSVRowCount counts data rows, treating the first line as a header
	StrategyCSVRowCount
	// StrategyMatchCount counts non-overlapping matches of an embedded regex
	StrategyMatchCount
)

// Spec is the parsed form of a registry NormalizationSpec
type Spec struct {
	Strategy Strategy
	Pattern  *regexp.Regexp
	Capture  *regexp.Regexp
}

// ParseSpec resolves a raw registry normalization entry into a Spec. An
// unrecognized strategy name yields StrategyNone together with an error so the
// registry can flag it at load time; the pipeline itself treats it as a no-op.
func ParseSpec(raw *common.NormalizationSpec) (Spec, error) {
	spec := Spec{Strategy: StrategyNone}
	if raw == nil {
		return spec, nil
	}

	var err error
	if raw.Regex != "" {
		spec.Capture, err = regexp.Compile(raw.Regex)
		if err != nil {
			return spec, errBadCaptureRegex(raw.Regex)
		}
	}

	name := raw.Strategy
	switch {
	case name == "":
	case name == csvRowCountName:
		spec.Strategy = StrategyCSVRowCount
	case strings.Contains(name, "match") && strings.Contains(name, "length"):
		spec.Pattern, err = extractEmbeddedPattern(name)
		if err != nil {
			return spec, err
		}
		spec.Strategy = StrategyMatchCount
	default:
		return spec, errUnknownStrategy(name)
	}

	return spec, nil
}

// Normalize applies the named transform, the optional capture regex and the
// trailing trim to a raw extracted value. Parse problems degrade to a no-op;
// the registry reports them separately.
func Normalize(value string, raw *common.NormalizationSpec) string {
	spec, _ := ParseSpec(raw)
	return spec.Apply(value)
}

// Apply runs the parsed transform over a raw value
func (spec Spec) Apply(value string) string {
	switch spec.Strategy {
	case StrategyCSVRowCount:
		value = countCSVRows(value)
	case StrategyMatchCount:
		if spec.Pattern != nil {
			value = strconv.Itoa(len(spec.Pattern.FindAllStringIndex(value, -1)))
		}
	}

	if spec.Capture != nil {
		groups := spec.Capture.FindStringSubmatch(value)
		if len(groups) > 1 {
			value = groups[1]
		}
	}

	return strings.TrimSpace(value)
}

func countCSVRows(value string) string {
	if value == "" {
		return "0"
	}

	return strconv.Itoa(len(strings.Split(value, "\n")) - 1)
}

// extractEmbeddedPattern pulls a /pattern/flags expression out of a strategy
// name such as "match(/<tr/g).length" and compiles it. The g flag is implied
// by counting all matches; i, m and s translate to regexp mode flags.
func extractEmbeddedPattern(name string) (*regexp.Regexp, error) {
	start := strings.Index(name, "/")
	end := strings.LastIndex(name, "/")
	if start < 0 || end <= start {
		return nil, errUnknownStrategy(name)
	}

	pattern := name[start+1 : end]
	var modes strings.Builder
	for _, flag := range name[end+1:] {
		if flag == 'g' {
			continue
		}
		if flag != 'i' && flag != 'm' && flag != 's' {
			// trailing ").length" ends the flag run
			break
		}
		modes.WriteRune(flag)
	}

	if modes.Len() > 0 {
		pattern = "(?" + modes.String() + ")" + pattern
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errBadEmbeddedPattern(name)
	}

	return compiled, nil
}
