//go:build !integration

package convert

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLToJSON(t *testing.T) {
	out, err := YAMLToJSON("foo: bar\nnums:\n  - 1\n  - 2\n")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), "output should be valid JSON")

	assert.Equal(t, "bar", decoded["foo"])
	assert.Equal(t, []any{float64(1), float64(2)}, decoded["nums"])
}

func TestYAMLToJSON_PreservesKeyOrder(t *testing.T) {
	out, err := YAMLToJSON("zebra: 1\napple: 2\nmango: 3\n")
	require.NoError(t, err)

	zebra := strings.Index(out, "zebra")
	apple := strings.Index(out, "apple")
	mango := strings.Index(out, "mango")
	assert.True(t, zebra < apple && apple < mango,
		"keys should appear in source order, got %q", out)
}

func TestYAMLToJSON_ResolvesAnchors(t *testing.T) {
	doc := "base: &b\n  size: 3\nderived: *b\n"
	out, err := YAMLToJSON(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	derived, ok := decoded["derived"].(map[string]any)
	require.True(t, ok, "derived should be an object, got %T", decoded["derived"])
	assert.Equal(t, float64(3), derived["size"], "alias should expand to anchored value")
}

func TestYAMLToJSON_Malformed(t *testing.T) {
	_, err := YAMLToJSON("foo: [unclosed\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "yaml", parseErr.Format)
}

func TestJSONToYAML(t *testing.T) {
	out, err := JSONToYAML(`{"foo":"bar","nums":[1,2]}`)
	require.NoError(t, err)

	assert.Contains(t, out, "foo: bar")
	assert.Contains(t, out, "nums:")
	assert.Contains(t, out, "- 1")
	assert.Contains(t, out, "- 2")
}

func TestJSONToYAML_RejectsNonJSON(t *testing.T) {
	// Valid YAML but not JSON must be rejected by the JSON side.
	_, err := JSONToYAML("foo: bar\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
}

func TestJSONToYAML_PositionHint(t *testing.T) {
	_, err := JSONToYAML("{\n  \"a\": 1,\n}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[", "error should carry a position hint")
}

func TestRoundTrip(t *testing.T) {
	src := "foo: bar\nnums:\n  - 1\n  - 2\nnested:\n  key: value\n"

	jsonText, err := YAMLToJSON(src)
	require.NoError(t, err)

	back, err := JSONToYAML(jsonText)
	require.NoError(t, err)

	// Semantic equivalence: same structure after re-conversion.
	again, err := YAMLToJSON(back)
	require.NoError(t, err)

	var a, b any
	require.NoError(t, json.Unmarshal([]byte(jsonText), &a))
	require.NoError(t, json.Unmarshal([]byte(again), &b))
	assert.Equal(t, a, b, "round-trip should preserve structure")
}
