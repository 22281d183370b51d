// Package engine implements the validation orchestration pipeline: input
// guard, fingerprint cache, concurrency gate, external tool invocation, and
// result aggregation, for single documents and whole directory trees.
package engine

// Severity classifies a validation message.
type Severity string

// Message severities, ordered by weight. Only SeverityError affects the
// aggregated OK flag.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Message is one diagnostic produced by a validation tool or a built-in
// check. Line and Column are 1-based and zero when unknown.
type Message struct {
	Severity Severity `json:"severity"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Text     string   `json:"text"`
	Tool     string   `json:"tool"`
}

// Outcome is the aggregated result of validating one document. OK is true
// iff every invoked tool succeeded and no error-severity message was
// produced. A failed outcome always carries at least one message.
type Outcome struct {
	OK       bool      `json:"ok"`
	Messages []Message `json:"messages"`
}

// ErrorCount returns the number of error-severity messages.
func (o Outcome) ErrorCount() int {
	n := 0
	for _, m := range o.Messages {
		if m.Severity == SeverityError {
			n++
		}
	}
	return n
}

// wellFormed is the cache shape check: a failed outcome with no explanatory
// message is treated as corrupt and recomputed.
func wellFormed(o Outcome) bool {
	return o.OK || len(o.Messages) > 0
}

// ToolConfig carries per-request tool configuration.
type ToolConfig struct {
	// RulesetPath points at a Spectral ruleset; empty selects the engine's
	// default ruleset, if any.
	RulesetPath string

	// SchemaPath points at a JSON Schema the document must satisfy; empty
	// skips the schema check.
	SchemaPath string

	// Tools restricts the run to the named tools. Empty runs every tool
	// configured on the engine.
	Tools []string
}

// Request is the immutable input to a single-document validation.
type Request struct {
	// Content is the raw YAML document text.
	Content string

	// Filename is the declared name, checked against the extension
	// allow-list.
	Filename string

	// MIMEType is the declared content type, checked against the MIME
	// allow-list.
	MIMEType string

	// Config is the optional tool configuration.
	Config ToolConfig
}

// BatchEntry pairs one discovered file with its validation outcome.
type BatchEntry struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
}

// BatchReport is the per-file result set of a directory run, ordered by
// path. Its length always equals the number of matched files.
type BatchReport []BatchEntry

// OK reports whether every entry validated successfully.
func (r BatchReport) OK() bool {
	for _, e := range r {
		if !e.Outcome.OK {
			return false
		}
	}
	return true
}

// Failed returns the number of entries with a failed outcome.
func (r BatchReport) Failed() int {
	n := 0
	for _, e := range r {
		if !e.Outcome.OK {
			n++
		}
	}
	return n
}
