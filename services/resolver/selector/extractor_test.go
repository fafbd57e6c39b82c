package selector

import (
	"errors"
	"testing"

	"github.com/statpage/metric-resolver/services/resolver/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestExtractJSONPath(t *testing.T) {
	t.Parallel()

	t.Run("nested key path", func(t *testing.T) {
		value, found, err := ExtractJSONPath(gjson.Parse(`{"response":{"numFound": 42}}`), "response.numFound")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "42", value)
	})
	t.Run("missing key soft-fails", func(t *testing.T) {
		value, found, err := ExtractJSONPath(gjson.Parse(`{"response":{"numFound": 42}}`), "response.missing")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "", value)
	})
	t.Run("null value soft-fails", func(t *testing.T) {
		_, found, err := ExtractJSONPath(gjson.Parse(`{"value": null}`), "value")

		require.NoError(t, err)
		assert.False(t, found)
	})
	t.Run("array index on named child", func(t *testing.T) {
		value, found, err := ExtractJSONPath(gjson.Parse(`{"docs":[{"title":"a"},{"title":"b"}]}`), "docs[1].title")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "b", value)
	})
	t.Run("empty key indexes current value", func(t *testing.T) {
		value, found, err := ExtractJSONPath(gjson.Parse(`["x","y","z"]`), "[2]")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "z", value)
	})
	t.Run("index into non-array hard-fails", func(t *testing.T) {
		_, found, err := ExtractJSONPath(gjson.Parse(`{"docs":{"title":"a"}}`), "docs[0]")

		require.Error(t, err)
		assert.False(t, found)

		var selErr *SelectorError
		require.True(t, errors.As(err, &selErr))
		assert.Equal(t, "docs[0]", selErr.Segment)
	})
	t.Run("index out of range hard-fails", func(t *testing.T) {
		_, _, err := ExtractJSONPath(gjson.Parse(`{"docs":["only"]}`), "docs[5]")

		var selErr *SelectorError
		require.True(t, errors.As(err, &selErr))
		assert.Contains(t, selErr.Reason, "out of range")
	})
}

func TestExtractMarkup(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<span class="count" data-total="1300">1,234</span>
		<span class="count">9,999</span>
		<div id="inner"><b>bold</b> tail</div>
	</body></html>`

	t.Run("default command is text", func(t *testing.T) {
		value, found, err := ExtractMarkup(page, "span.count")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "1,234", value)
	})
	t.Run("explicit text command picks first match", func(t *testing.T) {
		value, found, err := ExtractMarkup(page, "span.count|text")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "1,234", value)
	})
	t.Run("html command returns inner markup", func(t *testing.T) {
		value, found, err := ExtractMarkup(page, "#inner|html")

		require.NoError(t, err)
		require.True(t, found)
		assert.Contains(t, value, "<b>bold</b>")
	})
	t.Run("attr command returns named attribute", func(t *testing.T) {
		value, found, err := ExtractMarkup(page, "span.count|attr:data-total")

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "1300", value)
	})
	t.Run("missing attribute soft-fails", func(t *testing.T) {
		_, found, err := ExtractMarkup(page, "span.count|attr:nope")

		require.NoError(t, err)
		assert.False(t, found)
	})
	t.Run("zero matches soft-fail", func(t *testing.T) {
		_, found, err := ExtractMarkup(page, "table.results|text")

		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("text format ignores selector", func(t *testing.T) {
		value, found, err := Extract("raw\ncontent", "anything", common.FormatText)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "raw\ncontent", value)
	})
	t.Run("empty selector returns content unchanged", func(t *testing.T) {
		value, found, err := Extract(`{"a":1}`, "", common.FormatJSON)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, `{"a":1}`, value)
	})
	t.Run("json format routes to path extraction", func(t *testing.T) {
		value, found, err := Extract(`{"a":{"b":"c"}}`, "a.b", common.FormatJSON)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "c", value)
	})
	t.Run("xml format routes to markup extraction", func(t *testing.T) {
		value, found, err := Extract(`<feed><entry><count>7</count></entry></feed>`, "entry count", common.FormatXML)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "7", value)
	})
}
