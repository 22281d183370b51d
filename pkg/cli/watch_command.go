package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/javascriptjoey/cloudlint/pkg/console"
	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/engine"
	"github.com/javascriptjoey/cloudlint/pkg/guard"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var watchLog = logger.New("cli:watch_command")

// debounceWindow coalesces the bursts of write events editors emit for a
// single save.
const debounceWindow = 200 * time.Millisecond

// debouncer coalesces repeated triggers per key: fn runs once after a key
// has been quiet for the window. Fired keys are dropped from the pending
// map, and fn invocations are serialized so their output cannot interleave.
type debouncer struct {
	window time.Duration
	fn     func(key string)

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func newDebouncer(window time.Duration, fn func(string)) *debouncer {
	return &debouncer{
		window:  window,
		fn:      fn,
		pending: make(map[string]*time.Timer),
	}
}

func (d *debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[key]; exists {
		timer.Stop()
	}
	d.pending[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.pending, key)
		d.fn(key)
	})
}

// pendingLen returns the number of keys with an armed timer.
func (d *debouncer) pendingLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-validate YAML files as they change",
		Long: `Watch a directory and re-validate any .yaml/.yml file that is created or
written. The outcome cache means an unchanged file saved twice is not
re-linted. Runs until interrupted.

Examples:
  ` + constants.CLIBinaryName + ` watch ./manifests
  ` + constants.CLIBinaryName + ` watch ./manifests --ruleset .spectral.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleset, _ := cmd.Flags().GetString("ruleset")
			schema, _ := cmd.Flags().GetString("schema")
			tools, _ := cmd.Flags().GetStringSlice("tools")

			root := args[0]
			eng := engine.New(engine.Options{})
			cfg := toolConfigFromFlags(ruleset, schema, tools)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("cannot create watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(root); err != nil {
				return fmt.Errorf("cannot watch %s: %w", root, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), console.FormatInfoMessage(fmt.Sprintf("Watching %s", root)))

			changes := newDebouncer(debounceWindow, func(path string) {
				validateChanged(cmd, eng, path, cfg)
			})

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
						continue
					}
					if guard.CheckExtension(event.Name) != nil {
						continue
					}
					watchLog.Printf("Change detected: %s", event.Name)
					changes.Trigger(event.Name)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintln(cmd.ErrOrStderr(), console.FormatWarningMessage(fmt.Sprintf("watch error: %v", err)))
				}
			}
		},
	}

	addLintFlags(cmd)
	return cmd
}

func validateChanged(cmd *cobra.Command, eng *engine.Engine, path string, cfg engine.ToolConfig) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), console.FormatWarningMessage(fmt.Sprintf("cannot read %s: %v", path, err)))
		return
	}

	outcome, err := eng.ValidateYAML(cmd.Context(), engine.Request{
		Content:  string(content),
		Filename: path,
		MIMEType: inferredMIMEType,
		Config:   cfg,
	})
	if err != nil {
		return
	}
	printOutcome(cmd.OutOrStdout(), path, outcome)
}
