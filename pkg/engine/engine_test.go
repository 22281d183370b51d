//go:build !integration

package engine

import (
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javascriptjoey/cloudlint/pkg/gate"
	"github.com/javascriptjoey/cloudlint/pkg/runner"
)

// fakeRunner is an instrumented Runner double. It never spawns a process:
// it reads the staged document (the invocation's last argument) and fails
// the run when the document contains "fail".
type fakeRunner struct {
	calls atomic.Int64

	active atomic.Int64
	peak   atomic.Int64

	delay time.Duration
}

func (r *fakeRunner) Run(ctx context.Context, inv runner.Invocation) (runner.Result, error) {
	r.calls.Add(1)

	n := r.active.Add(1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	defer r.active.Add(-1)

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return runner.Result{ExitCode: -1}, ctx.Err()
		}
	}

	docPath := inv.Args[len(inv.Args)-1]
	content, err := os.ReadFile(docPath)
	if err != nil {
		return runner.Result{ExitCode: -1}, err
	}
	if strings.Contains(string(content), "fail") {
		return runner.Result{ExitCode: 1, Stdout: "document rejected"}, nil
	}
	return runner.Result{ExitCode: 0}, nil
}

// fakeTool pairs with fakeRunner: any nonzero exit becomes one error message.
type fakeTool struct{ name string }

func (t *fakeTool) Name() string { return t.name }

func (t *fakeTool) Invocation(docPath string, cfg ToolConfig) runner.Invocation {
	return runner.Invocation{Tool: t.name, Args: []string{docPath}}
}

func (t *fakeTool) Parse(res runner.Result) ([]Message, error) {
	if res.ExitCode != 0 {
		return []Message{{Severity: SeverityError, Text: res.Stdout, Tool: t.name}}, nil
	}
	return nil, nil
}

func newTestEngine(r runner.Runner, capacity int) *Engine {
	return New(Options{
		Runner: r,
		Tools:  []Tool{&fakeTool{name: "faketool"}},
		Gate:   gate.New(capacity),
	})
}

func validRequest(content string) Request {
	return Request{Content: content, Filename: "doc.yaml", MIMEType: "application/yaml"}
}

func TestValidateYAML_GuardFailFast(t *testing.T) {
	r := &fakeRunner{}
	e := newTestEngine(r, 2)

	tests := []struct {
		name string
		req  Request
	}{
		{"bad extension", Request{Content: "a: 1\n", Filename: "file.txt", MIMEType: "application/yaml"}},
		{"bad MIME type", Request{Content: "a: 1\n", Filename: "file.yaml", MIMEType: "application/json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := e.ValidateYAML(context.Background(), tt.req)
			require.NoError(t, err)

			assert.False(t, outcome.OK)
			require.NotEmpty(t, outcome.Messages, "rejection must carry an explanatory message")
			assert.Equal(t, "guard", outcome.Messages[0].Tool)
		})
	}

	assert.Zero(t, r.calls.Load(), "a rejected document must never reach a tool")
	assert.Zero(t, e.CacheLen(), "a rejected document must never pollute the cache")
}

func TestValidateYAML_PassThrough(t *testing.T) {
	e := newTestEngine(&fakeRunner{}, 2)

	outcome, err := e.ValidateYAML(context.Background(), validRequest("a: 1\n"))
	require.NoError(t, err)
	assert.True(t, outcome.OK, "a clean document with no tool findings should pass")
}

func TestValidateYAML_CacheIdempotence(t *testing.T) {
	r := &fakeRunner{}
	e := newTestEngine(r, 2)

	req := validRequest("a: 1\n")
	first, err := e.ValidateYAML(context.Background(), req)
	require.NoError(t, err)
	callsAfterFirst := r.calls.Load()
	require.Positive(t, callsAfterFirst, "the first call should invoke the tool")

	second, err := e.ValidateYAML(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, r.calls.Load(),
		"a repeat of unchanged input must not invoke any tool")
	assert.Equal(t, first, second, "the cached outcome must be returned unchanged")
	assert.Equal(t, 1, e.CacheLen())
}

func TestValidateYAML_FingerprintSeparatesConfigs(t *testing.T) {
	r := &fakeRunner{}
	e := newTestEngine(r, 2)

	req := validRequest("a: 1\n")
	_, err := e.ValidateYAML(context.Background(), req)
	require.NoError(t, err)

	withRuleset := req
	withRuleset.Config.RulesetPath = "custom-ruleset.yaml"
	_, err = e.ValidateYAML(context.Background(), withRuleset)
	require.NoError(t, err)

	assert.Equal(t, 2, e.CacheLen(),
		"different tool configurations must not share a cache entry")
}

func TestValidateYAML_SyntaxErrorShortCircuits(t *testing.T) {
	r := &fakeRunner{}
	e := newTestEngine(r, 2)

	outcome, err := e.ValidateYAML(context.Background(), validRequest("a: [unclosed\n"))
	require.NoError(t, err)

	assert.False(t, outcome.OK)
	require.NotEmpty(t, outcome.Messages)
	assert.Equal(t, "syntax", outcome.Messages[0].Tool)
	assert.Zero(t, r.calls.Load(), "unparsable input should not reach external tools")
}

func TestValidateYAML_ToolFailureSynthesized(t *testing.T) {
	e := newTestEngine(&fakeRunner{}, 2)

	outcome, err := e.ValidateYAML(context.Background(), validRequest("mode: fail\n"))
	require.NoError(t, err)

	assert.False(t, outcome.OK)
	require.NotEmpty(t, outcome.Messages)
	assert.Equal(t, "faketool", outcome.Messages[0].Tool)
}

func TestValidateYAML_SingleflightDeduplicates(t *testing.T) {
	r := &fakeRunner{delay: 30 * time.Millisecond}
	e := newTestEngine(r, 4)

	const callers = 6
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := e.ValidateYAML(context.Background(), validRequest("a: 1\n"))
			assert.NoError(t, err)
			assert.True(t, outcome.OK)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), r.calls.Load(),
		"simultaneous identical requests should share one computation")
}

func TestValidateYAML_LaunchFailureIsRecovered(t *testing.T) {
	e := New(Options{
		Runner: runner.NewExecRunner(),
		Tools:  []Tool{&missingBinaryTool{}},
		Gate:   gate.New(1),
	})

	outcome, err := e.ValidateYAML(context.Background(), validRequest("a: 1\n"))
	require.NoError(t, err, "a missing tool binary must not fail the call")
	assert.False(t, outcome.OK)
	require.NotEmpty(t, outcome.Messages)
	assert.Contains(t, outcome.Messages[0].Text, "could not be started")
}

// missingBinaryTool points at a binary that does not exist.
type missingBinaryTool struct{}

func (t *missingBinaryTool) Name() string { return "ghost" }

func (t *missingBinaryTool) Invocation(docPath string, cfg ToolConfig) runner.Invocation {
	return runner.Invocation{Tool: "cloudlint-no-such-binary-xyz", Args: []string{docPath}}
}

func (t *missingBinaryTool) Parse(res runner.Result) ([]Message, error) {
	return nil, nil
}

func TestValidateYAML_ToolSelection(t *testing.T) {
	r := &fakeRunner{}
	e := New(Options{
		Runner: r,
		Tools:  []Tool{&fakeTool{name: "one"}, &fakeTool{name: "two"}},
		Gate:   gate.New(2),
	})

	req := validRequest("a: 1\n")
	req.Config.Tools = []string{"two"}
	outcome, err := e.ValidateYAML(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, outcome.OK)
	assert.Equal(t, int64(1), r.calls.Load(), "only the selected tool should run")
}

func TestResetCache(t *testing.T) {
	r := &fakeRunner{}
	e := newTestEngine(r, 2)

	_, err := e.ValidateYAML(context.Background(), validRequest("a: 1\n"))
	require.NoError(t, err)
	require.Equal(t, 1, e.CacheLen())

	e.ResetCache()
	assert.Zero(t, e.CacheLen())

	_, err = e.ValidateYAML(context.Background(), validRequest("a: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.calls.Load(), "a reset cache should recompute")
}

func TestValidateYAML_Cancellation(t *testing.T) {
	r := &fakeRunner{delay: time.Second}
	e := newTestEngine(r, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := e.ValidateYAML(ctx, validRequest("a: 1\n"))
	require.Error(t, err, "cancellation should surface as an error")
	assert.Zero(t, e.CacheLen(), "a cancelled run must not write a cache entry")
}
