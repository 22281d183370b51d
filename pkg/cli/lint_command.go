package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/engine"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var lintLog = logger.New("cli:lint_command")

// inferredMIMEType is declared for files read from disk, where no MIME type
// accompanies the document.
const inferredMIMEType = "application/yaml"

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Validate one or more YAML files",
		Long: `Validate one or more YAML files with the configured tools.

Examples:
  ` + constants.CLIBinaryName + ` lint config.yaml
  ` + constants.CLIBinaryName + ` lint a.yaml b.yml --ruleset .spectral.yaml
  ` + constants.CLIBinaryName + ` lint deploy.yaml --schema deploy.schema.json
  ` + constants.CLIBinaryName + ` lint config.yaml --tools spectral,yamllint
  ` + constants.CLIBinaryName + ` lint config.yaml --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleset, _ := cmd.Flags().GetString("ruleset")
			schema, _ := cmd.Flags().GetString("schema")
			tools, _ := cmd.Flags().GetStringSlice("tools")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			lintLog.Printf("Running lint command: files=%v", args)

			eng := engine.New(engine.Options{})
			cfg := toolConfigFromFlags(ruleset, schema, tools)

			report := make(engine.BatchReport, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("cannot read %s: %w", path, err)
				}
				outcome, err := eng.ValidateYAML(cmd.Context(), engine.Request{
					Content:  string(content),
					Filename: path,
					MIMEType: inferredMIMEType,
					Config:   cfg,
				})
				if err != nil {
					return err
				}
				report = append(report, engine.BatchEntry{Path: path, Outcome: outcome})
			}

			if jsonOutput {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				for _, entry := range report {
					printOutcome(cmd.OutOrStdout(), entry.Path, entry.Outcome)
				}
			}

			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(report))
			}
			return nil
		},
	}

	addLintFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output results in JSON format")
	return cmd
}

// addLintFlags registers the tool configuration flags shared by lint, dir
// and watch.
func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("ruleset", "r", "", "Spectral ruleset path (default: $"+constants.SpectralRulesetEnvVar+")")
	cmd.Flags().StringP("schema", "s", "", "JSON Schema the documents must satisfy")
	cmd.Flags().StringSliceP("tools", "t", nil, "Restrict the run to the named tools (spectral, yamllint)")
}
