// Package convert provides bidirectional YAML/JSON conversion.
//
// Mappings are decoded into yaml.MapSlice (goccy/go-yaml's ordered map) so
// that key order recorded in the source document survives the conversion in
// both directions. Anchors and aliases are resolved during decoding; the JSON
// side carries their expanded values.
package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var log = logger.New("convert:convert")

// ParseError reports malformed input to either converter. The message carries
// a position hint ([line:column]) when the underlying parser provides one.
type ParseError struct {
	Format string // "yaml" or "json"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// YAMLToJSON converts a YAML document to indented JSON text. Mapping key
// order is preserved; anchors and aliases resolve to their expanded values.
func YAMLToJSON(text string) (string, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions([]byte(text), &doc, yaml.UseOrderedMap()); err != nil {
		log.Printf("YAML parse failed: %v", err)
		return "", &ParseError{Format: "yaml", Err: err}
	}

	var buf strings.Builder
	if err := encodeJSON(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, []byte(buf.String()), "", "  "); err != nil {
		return "", fmt.Errorf("failed to indent JSON: %w", err)
	}
	return indented.String(), nil
}

// JSONToYAML converts a JSON document to YAML text. Object key order is
// preserved.
func JSONToYAML(text string) (string, error) {
	// Validate with the JSON grammar first; YAML accepts a superset of JSON
	// and would otherwise let non-JSON input through.
	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		log.Printf("JSON parse failed: %v", err)
		return "", &ParseError{Format: "json", Err: positionedJSONError(text, err)}
	}

	// Decode again with the YAML parser to obtain an ordered representation.
	var doc any
	if err := yaml.UnmarshalWithOptions([]byte(text), &doc, yaml.UseOrderedMap()); err != nil {
		return "", &ParseError{Format: "json", Err: err}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(out), nil
}

// positionedJSONError augments encoding/json errors with a line:column hint
// derived from the byte offset.
func positionedJSONError(text string, err error) error {
	var offset int64
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	default:
		return err
	}

	line, col := 1, 1
	for i := int64(0); i < offset-1 && i < int64(len(text)); i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return fmt.Errorf("[%d:%d] %w", line, col, err)
}

// encodeJSON writes a compact JSON encoding of a decoded YAML value,
// preserving the key order recorded in yaml.MapSlice values.
func encodeJSON(buf *strings.Builder, value any) error {
	switch v := value.(type) {
	case yaml.MapSlice:
		buf.WriteString("{")
		for i, item := range v {
			if i > 0 {
				buf.WriteString(",")
			}
			key, err := json.Marshal(fmt.Sprint(item.Key))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteString(":")
			if err := encodeJSON(buf, item.Value); err != nil {
				return err
			}
		}
		buf.WriteString("}")
		return nil

	case []any:
		buf.WriteString("[")
		for i, elem := range v {
			if i > 0 {
				buf.WriteString(",")
			}
			if err := encodeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteString("]")
		return nil

	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}
}
