package selector

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/tidwall/gjson"
)

const (
	commandText       = "text"
	commandHTML       = "html"
	attrCommandPrefix = "attr:"
)

var indexedSegment = regexp.MustCompile(`^(.*)\[(\d+)\]$`)

// Extract applies the selector to decoded content according to the source format.
// The boolean return is false when the selector matched no usable value, which
// callers must treat as "tier produced nothing" and route to the next failover
// tier. Only malformed array-index access returns an error.
func Extract(body string, sel string, format common.SourceFormat) (string, bool, error) {
	if sel == "" || format == common.FormatText {
		return body, true, nil
	}

	switch format {
	case common.FormatJSON:
		return ExtractJSONPath(gjson.Parse(body), sel)
	case common.FormatHTML, common.FormatXML:
		return ExtractMarkup(body, sel)
	default:
		return body, true, nil
	}
}

// ExtractJSONPath walks a dot-separated path over a parsed JSON value. Each
// segment is a plain key or a key followed by a bracketed array index; an
// empty key before the bracket indexes the current value directly.
func ExtractJSONPath(root gjson.Result, path string) (string, bool, error) {
	current := root
	for _, segment := range strings.Split(path, ".") {
		key := segment
		index := -1

		match := indexedSegment.FindStringSubmatch(segment)
		if match != nil {
			key = match[1]
			index, _ = strconv.Atoi(match[2])
		}

		if key != "" {
			next := current.Get(key)
			if !next.Exists() {
				return "", false, nil
			}
			current = next
		}

		if index >= 0 {
			if !current.IsArray() {
				return "", false, &SelectorError{
					Path:    path,
					Segment: segment,
					Reason:  "array index applied to a non-array value",
				}
			}

			elements := current.Array()
			if index >= len(elements) {
				return "", false, &SelectorError{
					Path:    path,
					Segment: segment,
					Reason:  "array index out of range (len " + strconv.Itoa(len(elements)) + ")",
				}
			}
			current = elements[index]
		}
	}

	if current.Type == gjson.Null {
		return "", false, nil
	}

	return current.String(), true, nil
}

// ExtractMarkup resolves a `<css-selector>|<command>` expression against markup
// content. Command defaults to `text`; `html` returns the first match's inner
// markup and `attr:<name>` a named attribute. Zero matches soft-fail.
func ExtractMarkup(body string, sel string) (string, bool, error) {
	cssExpr := sel
	command := commandText

	parts := strings.SplitN(sel, "|", 2)
	if len(parts) == 2 {
		cssExpr = strings.TrimSpace(parts[0])
		command = strings.TrimSpace(parts[1])
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false, err
	}

	matches := doc.Find(cssExpr)
	if matches.Length() == 0 {
		return "", false, nil
	}

	first := matches.First()
	switch {
	case command == commandHTML:
		inner, errHTML := first.Html()
		if errHTML != nil {
			return "", false, errHTML
		}
		return inner, true, nil
	case strings.HasPrefix(command, attrCommandPrefix):
		value, ok := first.Attr(strings.TrimPrefix(command, attrCommandPrefix))
		if !ok {
			return "", false, nil
		}
		return value, true, nil
	default:
		return first.Text(), true, nil
	}
}
