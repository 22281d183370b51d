package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javascriptjoey/cloudlint/pkg/console"
	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/engine"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var dirLog = logger.New("cli:dir_command")

// NewDirCommand creates the dir command.
func NewDirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir <path>",
		Short: "Validate every YAML file under a directory",
		Long: `Walk a directory tree and validate every .yaml/.yml file found.

One file's failure does not stop the batch; the summary lists an outcome for
every matched file.

Examples:
  ` + constants.CLIBinaryName + ` dir ./manifests
  ` + constants.CLIBinaryName + ` dir ./manifests --ruleset .spectral.yaml
  ` + constants.CLIBinaryName + ` dir ./manifests --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleset, _ := cmd.Flags().GetString("ruleset")
			schema, _ := cmd.Flags().GetString("schema")
			tools, _ := cmd.Flags().GetStringSlice("tools")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

			dirLog.Printf("Running dir command: root=%s", args[0])

			eng := engine.New(engine.Options{})
			report, err := eng.ValidateDirectory(cmd.Context(), args[0], toolConfigFromFlags(ruleset, schema, tools))
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				printBatchSummary(cmd, report, verbose)
			}

			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(report))
			}
			return nil
		},
	}

	addLintFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output results in JSON format")
	cmd.Flags().BoolP("verbose", "v", false, "Print every message, not just the summary table")
	return cmd
}

func printBatchSummary(cmd *cobra.Command, report engine.BatchReport, verbose bool) {
	out := cmd.OutOrStdout()

	if verbose {
		for _, entry := range report {
			printOutcome(out, entry.Path, entry.Outcome)
		}
		fmt.Fprintln(out)
	}

	rows := make([][]string, 0, len(report))
	for _, entry := range report {
		status := "ok"
		if !entry.Outcome.OK {
			status = "failed"
		}
		rows = append(rows, []string{
			entry.Path,
			status,
			strconv.Itoa(len(entry.Outcome.Messages)),
		})
	}
	fmt.Fprint(out, console.RenderTable(console.TableConfig{
		Headers: []string{"File", "Status", "Messages"},
		Rows:    rows,
	}))

	if report.OK() {
		fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("%d file(s) validated", len(report))))
	} else {
		fmt.Fprintln(out, console.FormatErrorMessage(fmt.Sprintf("%d of %d file(s) failed", report.Failed(), len(report))))
	}
}
