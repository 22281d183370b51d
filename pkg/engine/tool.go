package engine

import (
	"github.com/javascriptjoey/cloudlint/pkg/runner"
)

// Tool describes one pluggable validation tool. The engine never inspects
// the concrete type: it builds the invocation, hands it to the runner, and
// parses the captured output into messages.
type Tool interface {
	// Name identifies the tool in messages and in cache fingerprints.
	Name() string

	// Invocation builds the command line for validating the document at
	// docPath with the given configuration.
	Invocation(docPath string, cfg ToolConfig) runner.Invocation

	// Parse converts a raw invocation result into messages. A nonzero exit
	// code with unparsable output is not Parse's concern; the engine
	// synthesizes a generic failure message when Parse yields nothing for a
	// failed run.
	Parse(res runner.Result) ([]Message, error)
}
