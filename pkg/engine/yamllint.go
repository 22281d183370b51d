package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/runner"
)

// YamllintTool invokes yamllint with parsable output.
type YamllintTool struct {
	// Binary is the yamllint executable; defaults to "yamllint".
	Binary string
	// Timeout bounds each invocation.
	Timeout time.Duration
}

// NewYamllintTool creates a YamllintTool with the given per-invocation timeout.
func NewYamllintTool(timeout time.Duration) *YamllintTool {
	return &YamllintTool{Binary: "yamllint", Timeout: timeout}
}

// Name implements Tool.
func (t *YamllintTool) Name() string {
	return constants.YamllintToolID
}

// Invocation implements Tool.
func (t *YamllintTool) Invocation(docPath string, cfg ToolConfig) runner.Invocation {
	return runner.Invocation{
		Tool:    t.Binary,
		Args:    []string{"--format", "parsable", docPath},
		Timeout: t.Timeout,
	}
}

// parsableLine matches yamllint's parsable format:
//
//	path:line:column: [level] text (rule)
var parsableLine = regexp.MustCompile(`^(.*):(\d+):(\d+): \[(\w+)\] (.*)$`)

// Parse implements Tool.
func (t *YamllintTool) Parse(res runner.Result) ([]Message, error) {
	var messages []Message
	for line := range strings.Lines(res.Stdout) {
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}
		m := parsableLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		colNo, _ := strconv.Atoi(m[3])
		messages = append(messages, Message{
			Severity: yamllintSeverity(m[4]),
			Line:     lineNo,
			Column:   colNo,
			Text:     m[5],
			Tool:     t.Name(),
		})
	}
	return messages, nil
}

func yamllintSeverity(level string) Severity {
	switch level {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
