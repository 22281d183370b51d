package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/javascriptjoey/cloudlint/pkg/console"
	"github.com/javascriptjoey/cloudlint/pkg/engine"
)

// printOutcome writes one document's messages and verdict to w.
func printOutcome(w io.Writer, path string, outcome engine.Outcome) {
	for _, m := range outcome.Messages {
		location := path
		if m.Line > 0 {
			location = fmt.Sprintf("%s:%d:%d", path, m.Line, m.Column)
		}
		line := fmt.Sprintf("%s %s (%s)", location, m.Text, m.Tool)
		switch m.Severity {
		case engine.SeverityError:
			fmt.Fprintln(w, console.FormatErrorMessage(line))
		case engine.SeverityWarning:
			fmt.Fprintln(w, console.FormatWarningMessage(line))
		default:
			fmt.Fprintln(w, console.FormatInfoMessage(line))
		}
	}
	if outcome.OK {
		fmt.Fprintln(w, console.FormatSuccessMessage(path))
	}
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// toolConfigFromFlags assembles the per-request tool configuration from the
// common lint flags.
func toolConfigFromFlags(ruleset, schema string, tools []string) engine.ToolConfig {
	return engine.ToolConfig{
		RulesetPath: ruleset,
		SchemaPath:  schema,
		Tools:       tools,
	}
}
