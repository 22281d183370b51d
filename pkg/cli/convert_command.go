package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
	"github.com/javascriptjoey/cloudlint/pkg/convert"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var convertLog = logger.New("cli:convert_command")

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document between YAML and JSON",
		Long: `Convert a YAML document to JSON, or a JSON document to YAML.

The direction is inferred from the file extension and can be forced with
--to. The result is written to stdout.

Examples:
  ` + constants.CLIBinaryName + ` convert config.yaml            # YAML -> JSON
  ` + constants.CLIBinaryName + ` convert config.json            # JSON -> YAML
  ` + constants.CLIBinaryName + ` convert ambiguous.txt --to json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("to")

			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}

			if target == "" {
				switch strings.ToLower(filepath.Ext(path)) {
				case ".yaml", ".yml":
					target = "json"
				case ".json":
					target = "yaml"
				default:
					return fmt.Errorf("cannot infer conversion direction for %s; use --to", path)
				}
			}

			convertLog.Printf("Converting %s to %s", path, target)

			var out string
			switch target {
			case "json":
				out, err = convert.YAMLToJSON(string(content))
			case "yaml", "yml":
				out, err = convert.JSONToYAML(string(content))
			default:
				return fmt.Errorf("unsupported conversion target %q; use yaml or json", target)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}

	cmd.Flags().String("to", "", "Conversion target: yaml or json (default: inferred from extension)")
	return cmd
}
