package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var fingerprintLog = logger.New("cache:fingerprint")

// Fingerprint computes a deterministic SHA-256 key over the document content
// and the validation configuration. The content contributes via its own
// SHA-256 so that large documents hash once; the configuration components
// (ruleset path, schema path, tool identity set, ...) are serialized as
// canonical JSON with sorted keys so that map iteration order cannot change
// the result.
//
// Content hash alone would incorrectly share cache entries across different
// tool configurations, so every component that influences a validation
// outcome must be present in components.
func Fingerprint(content string, components map[string]any) string {
	contentHash := sha256.Sum256([]byte(content))

	canonical := make(map[string]any, len(components)+1)
	for k, v := range components {
		canonical[k] = v
	}
	canonical["content-sha256"] = hex.EncodeToString(contentHash[:])

	canonicalJSON := marshalSorted(canonical)
	fingerprintLog.Printf("Canonical JSON length: %d bytes", len(canonicalJSON))

	sum := sha256.Sum256([]byte(canonicalJSON))
	return hex.EncodeToString(sum[:])
}

// marshalSorted recursively marshals data to JSON with sorted map keys.
func marshalSorted(data any) string {
	switch v := data.(type) {
	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}

		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var result strings.Builder
		result.WriteString("{")
		for i, key := range keys {
			if i > 0 {
				result.WriteString(",")
			}
			keyJSON, err := json.Marshal(key)
			if err != nil {
				fingerprintLog.Printf("Warning: failed to marshal key %s: %v", key, err)
				continue
			}
			result.Write(keyJSON)
			result.WriteString(":")
			result.WriteString(marshalSorted(v[key]))
		}
		result.WriteString("}")
		return result.String()

	case []string:
		elems := make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
		return marshalSorted(elems)

	case []any:
		if len(v) == 0 {
			return "[]"
		}

		var result strings.Builder
		result.WriteString("[")
		for i, elem := range v {
			if i > 0 {
				result.WriteString(",")
			}
			result.WriteString(marshalSorted(elem))
		}
		result.WriteString("]")
		return result.String()

	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			fingerprintLog.Printf("Warning: failed to marshal value of type %T: %v", v, err)
			return "null"
		}
		return string(jsonBytes)
	}
}
