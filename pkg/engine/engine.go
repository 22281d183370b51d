package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/javascriptjoey/cloudlint/pkg/cache"
	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/envutil"
	"github.com/javascriptjoey/cloudlint/pkg/fileutil"
	"github.com/javascriptjoey/cloudlint/pkg/gate"
	"github.com/javascriptjoey/cloudlint/pkg/guard"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
	"github.com/javascriptjoey/cloudlint/pkg/runner"
)

var engineLog = logger.New("engine:engine")

// guardToolID identifies input guard rejections in messages.
const guardToolID = "guard"

// Options configures a new Engine. Zero-valued fields get defaults.
type Options struct {
	// Runner executes external tools; defaults to the process-backed runner.
	Runner runner.Runner

	// Tools is the validation tool set; defaults to Spectral alone.
	Tools []Tool

	// Gate bounds concurrent tool invocations; defaults to a gate configured
	// from CLOUDLINT_MAX_CONCURRENCY.
	Gate *gate.Gate

	// DefaultRuleset is used when a request supplies no ruleset path;
	// defaults to CLOUDLINT_SPECTRAL_RULESET.
	DefaultRuleset string
}

// Engine is the validation orchestrator. Construct one per process with New;
// the cache and the gate are shared by every validation the instance runs,
// single-document and batch alike. There is no package-level singleton.
type Engine struct {
	runner         runner.Runner
	tools          []Tool
	gate           *gate.Gate
	defaultRuleset string

	outcomes *cache.Store[Outcome]
	inflight singleflight.Group
}

// New creates an Engine with a fresh, empty cache.
func New(opts Options) *Engine {
	if opts.Runner == nil {
		opts.Runner = runner.NewExecRunner()
	}
	if len(opts.Tools) == 0 {
		timeout := envutil.GetDurationFromEnv(constants.ToolTimeoutEnvVar, constants.DefaultToolTimeout, engineLog)
		opts.Tools = []Tool{NewSpectralTool(timeout), NewYamllintTool(timeout)}
	}
	if opts.Gate == nil {
		opts.Gate = gate.NewFromEnv()
	}
	if opts.DefaultRuleset == "" {
		opts.DefaultRuleset = os.Getenv(constants.SpectralRulesetEnvVar)
	}

	engineLog.Printf("Engine created: tools=%d, gate capacity=%d", len(opts.Tools), opts.Gate.Capacity())
	return &Engine{
		runner:         opts.Runner,
		tools:          opts.Tools,
		gate:           opts.Gate,
		defaultRuleset: opts.DefaultRuleset,
		outcomes:       cache.NewStore[Outcome](wellFormed),
	}
}

// ResetCache drops every cached outcome.
func (e *Engine) ResetCache() {
	e.outcomes.Reset()
}

// CacheLen returns the number of cached outcomes.
func (e *Engine) CacheLen() int {
	return e.outcomes.Len()
}

// ValidateYAML validates one document through the full pipeline: input
// guard, cache lookup, and on a miss the gated tool invocations. Validation
// failures are reported inside the Outcome; the error return is reserved for
// cancellation.
func (e *Engine) ValidateYAML(ctx context.Context, req Request) (Outcome, error) {
	// Guard rejections return immediately and never create a cache entry.
	if err := guard.Check(req.Filename, req.MIMEType); err != nil {
		engineLog.Printf("Guard rejected %s: %v", req.Filename, err)
		return Outcome{
			OK: false,
			Messages: []Message{{
				Severity: SeverityError,
				Text:     err.Error(),
				Tool:     guardToolID,
			}},
		}, nil
	}

	cfg := e.applyDefaults(req.Config)
	fingerprint := e.fingerprint(req.Content, cfg)

	if outcome, ok := e.outcomes.Get(fingerprint); ok {
		engineLog.Printf("Cache hit: %s", fingerprint)
		return outcome, nil
	}

	// Concurrent misses on the same fingerprint collapse onto a single
	// computation; the first caller runs the tools, the rest wait for its
	// published result.
	result, err, _ := e.inflight.Do(fingerprint, func() (any, error) {
		outcome, err := e.compute(ctx, req.Content, cfg)
		if err != nil {
			return Outcome{}, err
		}
		e.outcomes.Set(fingerprint, outcome)
		return outcome, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return result.(Outcome), nil
}

// compute runs the built-in checks and the external tools for one document
// on a cache miss. It returns an error only when ctx is cancelled; nothing
// is cached on that path.
func (e *Engine) compute(ctx context.Context, content string, cfg ToolConfig) (Outcome, error) {
	// Cheap in-process checks run before a gate permit is taken.
	if messages := checkSyntax(content); len(messages) > 0 {
		// Unparsable input: external linters would only fail on it again.
		return Outcome{OK: false, Messages: messages}, nil
	}

	var messages []Message
	if cfg.SchemaPath != "" {
		messages = append(messages, checkSchema(content, cfg.SchemaPath)...)
	}

	tools := e.selectTools(cfg)
	if len(tools) > 0 {
		toolMessages, err := e.runTools(ctx, tools, content, cfg)
		if err != nil {
			return Outcome{}, err
		}
		messages = append(messages, toolMessages...)
	}

	outcome := Outcome{OK: countErrors(messages) == 0, Messages: messages}
	if outcome.OK && outcome.Messages == nil {
		outcome.Messages = []Message{}
	}
	return outcome, nil
}

// runTools writes the document to a temp file, then invokes every selected
// tool under a single gate permit. The permit is released on every exit
// path.
func (e *Engine) runTools(ctx context.Context, tools []Tool, content string, cfg ToolConfig) ([]Message, error) {
	docPath, err := fileutil.WriteTempFile("cloudlint-*.yaml", content)
	if err != nil {
		return []Message{{
			Severity: SeverityError,
			Text:     fmt.Sprintf("cannot stage document for validation: %v", err),
			Tool:     guardToolID,
		}}, nil
	}
	defer os.Remove(docPath)

	if err := e.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer e.gate.Release()

	var messages []Message
	for _, tool := range tools {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		toolMessages, err := e.runTool(ctx, tool, docPath, cfg)
		if err != nil {
			return nil, err
		}
		messages = append(messages, toolMessages...)
	}
	return messages, nil
}

// runTool invokes one tool and converts its raw result into messages. Launch
// failures and timeouts become synthetic failure messages so that other
// configured tools still run; caller cancellation propagates as an error.
func (e *Engine) runTool(ctx context.Context, tool Tool, docPath string, cfg ToolConfig) ([]Message, error) {
	res, err := e.runner.Run(ctx, tool.Invocation(docPath, cfg))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		switch {
		case errors.Is(err, runner.ErrToolTimeout):
			return []Message{{
				Severity: SeverityError,
				Text:     fmt.Sprintf("%s did not finish in time", tool.Name()),
				Tool:     tool.Name(),
			}}, nil
		case errors.Is(err, runner.ErrToolLaunch):
			return []Message{{
				Severity: SeverityError,
				Text:     fmt.Sprintf("%s could not be started: %v", tool.Name(), err),
				Tool:     tool.Name(),
			}}, nil
		default:
			return []Message{{
				Severity: SeverityError,
				Text:     fmt.Sprintf("%s failed: %v", tool.Name(), err),
				Tool:     tool.Name(),
			}}, nil
		}
	}

	messages, parseErr := tool.Parse(res)
	if parseErr != nil {
		engineLog.Printf("Output parse failed for %s: %v", tool.Name(), parseErr)
		return []Message{{
			Severity: SeverityError,
			Text:     fmt.Sprintf("%s produced unreadable output: %v", tool.Name(), parseErr),
			Tool:     tool.Name(),
		}}, nil
	}

	// Some tools signal failure only through the exit code. Surface it
	// rather than reporting a silent success.
	if res.ExitCode != 0 && countErrors(messages) == 0 {
		messages = append(messages, Message{
			Severity: SeverityError,
			Text:     fmt.Sprintf("%s exited with code %d", tool.Name(), res.ExitCode),
			Tool:     tool.Name(),
		})
	}
	return messages, nil
}

// applyDefaults fills the engine-level defaults into a request config.
func (e *Engine) applyDefaults(cfg ToolConfig) ToolConfig {
	if cfg.RulesetPath == "" {
		cfg.RulesetPath = e.defaultRuleset
	}
	return cfg
}

// selectTools resolves the request's tool selection against the engine's
// tool set. Unknown names are ignored.
func (e *Engine) selectTools(cfg ToolConfig) []Tool {
	if len(cfg.Tools) == 0 {
		return e.tools
	}
	wanted := make(map[string]bool, len(cfg.Tools))
	for _, name := range cfg.Tools {
		wanted[name] = true
	}
	var selected []Tool
	for _, tool := range e.tools {
		if wanted[tool.Name()] {
			selected = append(selected, tool)
		}
	}
	return selected
}

// fingerprint derives the cache key from the document content, the resolved
// configuration, and the identity of every tool that would run.
func (e *Engine) fingerprint(content string, cfg ToolConfig) string {
	toolIDs := make([]string, 0, len(e.tools))
	for _, tool := range e.selectTools(cfg) {
		toolIDs = append(toolIDs, tool.Name())
	}
	sort.Strings(toolIDs)

	return cache.Fingerprint(content, map[string]any{
		"ruleset": cfg.RulesetPath,
		"schema":  cfg.SchemaPath,
		"tools":   toolIDs,
	})
}

func countErrors(messages []Message) int {
	n := 0
	for _, m := range messages {
		if m.Severity == SeverityError {
			n++
		}
	}
	return n
}
