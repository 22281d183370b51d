package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/runner"
)

// SpectralTool invokes the Spectral linter (stoplightio/spectral) with JSON
// output and an optional ruleset.
type SpectralTool struct {
	// Binary is the spectral executable; defaults to "spectral".
	Binary string
	// Timeout bounds each invocation.
	Timeout time.Duration
}

// NewSpectralTool creates a SpectralTool with the given per-invocation timeout.
func NewSpectralTool(timeout time.Duration) *SpectralTool {
	return &SpectralTool{Binary: "spectral", Timeout: timeout}
}

// Name implements Tool.
func (t *SpectralTool) Name() string {
	return constants.SpectralToolID
}

// Invocation implements Tool.
func (t *SpectralTool) Invocation(docPath string, cfg ToolConfig) runner.Invocation {
	args := []string{"lint", "--format", "json", "--quiet"}
	if cfg.RulesetPath != "" {
		args = append(args, "--ruleset", cfg.RulesetPath)
	}
	args = append(args, docPath)
	return runner.Invocation{
		Tool:    t.Binary,
		Args:    args,
		Timeout: t.Timeout,
	}
}

// spectralDiagnostic is one entry of Spectral's JSON output.
type spectralDiagnostic struct {
	Code     any    `json:"code"`
	Message  string `json:"message"`
	Severity int    `json:"severity"`
	Range    struct {
		Start struct {
			Line      int `json:"line"`
			Character int `json:"character"`
		} `json:"start"`
	} `json:"range"`
}

// Parse implements Tool. Spectral reports positions 0-based; messages carry
// them 1-based.
func (t *SpectralTool) Parse(res runner.Result) ([]Message, error) {
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		return nil, nil
	}

	var diagnostics []spectralDiagnostic
	if err := json.Unmarshal([]byte(out), &diagnostics); err != nil {
		return nil, fmt.Errorf("unparsable spectral output: %w", err)
	}

	messages := make([]Message, 0, len(diagnostics))
	for _, d := range diagnostics {
		text := d.Message
		if code := fmt.Sprint(d.Code); code != "" && code != "<nil>" {
			text = fmt.Sprintf("%s (%s)", d.Message, code)
		}
		messages = append(messages, Message{
			Severity: spectralSeverity(d.Severity),
			Line:     d.Range.Start.Line + 1,
			Column:   d.Range.Start.Character + 1,
			Text:     text,
			Tool:     t.Name(),
		})
	}
	return messages, nil
}

// spectralSeverity maps Spectral's numeric DiagnosticSeverity (0=error,
// 1=warning, 2=information, 3=hint) onto message severities.
func spectralSeverity(s int) Severity {
	switch s {
	case 0:
		return SeverityError
	case 1:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
