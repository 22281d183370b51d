package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/sourcegraph/conc/pool"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/fileutil"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var batchLog = logger.New("engine:batch")

// batchMIMEType is assumed for files sourced from disk: the batch walker has
// no declared MIME type to check, only the extension filter.
const batchMIMEType = "application/yaml"

// ValidateDirectory validates every .yaml/.yml file under root and returns
// one report entry per matched file, ordered by path. A single file's
// failure (unreadable, tool error) is recorded in its entry and does not
// abort the batch. A nonexistent root is a hard error. On cancellation the
// interruption error is returned together with the entries that had
// already completed.
//
// All dispatched validations share the engine's gate, so its capacity bounds
// in-flight tool invocations across the whole batch.
func (e *Engine) ValidateDirectory(ctx context.Context, root string, cfg ToolConfig) (BatchReport, error) {
	files, err := fileutil.CollectFiles(root, constants.AllowedExtensions)
	if err != nil {
		return nil, err
	}
	batchLog.Printf("Batch start: root=%s, files=%d", root, len(files))

	// Results land in slots pre-allocated by discovery index, so the report
	// order is independent of completion order.
	entries := make(BatchReport, len(files))

	p := pool.New().WithContext(ctx)
	for i, path := range files {
		p.Go(func(ctx context.Context) error {
			entries[i] = BatchEntry{
				Path:    path,
				Outcome: e.validateFile(ctx, path, cfg),
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		// Entries finished before the interruption stay in the report;
		// only never-started slots are dropped.
		completed := make(BatchReport, 0, len(entries))
		for _, entry := range entries {
			if entry.Path != "" {
				completed = append(completed, entry)
			}
		}
		return completed, fmt.Errorf("batch validation interrupted: %w", err)
	}

	batchLog.Printf("Batch done: root=%s, failed=%d", root, entries.Failed())
	return entries, nil
}

// validateFile reads one discovered file and validates its content. Read
// failures become a failed outcome for that file.
func (e *Engine) validateFile(ctx context.Context, path string, cfg ToolConfig) Outcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return Outcome{
			OK: false,
			Messages: []Message{{
				Severity: SeverityError,
				Text:     fmt.Sprintf("cannot read file: %v", err),
				Tool:     guardToolID,
			}},
		}
	}

	outcome, err := e.ValidateYAML(ctx, Request{
		Content:  string(content),
		Filename: path,
		MIMEType: batchMIMEType,
		Config:   cfg,
	})
	if err != nil {
		// Cancellation mid-file: record it; Wait surfaces the batch error.
		return Outcome{
			OK: false,
			Messages: []Message{{
				Severity: SeverityError,
				Text:     fmt.Sprintf("validation interrupted: %v", err),
				Tool:     guardToolID,
			}},
		}
	}
	return outcome
}
