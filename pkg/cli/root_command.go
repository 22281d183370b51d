// Package cli implements the cloudlint command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javascriptjoey/cloudlint/pkg/constants"
)

// NewRootCommand creates the cloudlint root command with all subcommands
// attached.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CLIBinaryName,
		Short: "Validate YAML documents with external linting tools",
		Long: `cloudlint validates YAML documents, individually or across a directory
tree, by orchestrating external linting tools (Spectral, yamllint) together
with built-in syntax and JSON Schema checks. It also converts between YAML
and JSON.

Validation outcomes are cached by a fingerprint of content and configuration,
so repeated runs over unchanged input do not re-invoke any tool. Concurrent
tool invocations are bounded; set ` + constants.MaxConcurrencyEnvVar + ` to change the bound.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewLintCommand())
	cmd.AddCommand(NewDirCommand())
	cmd.AddCommand(NewConvertCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the " + constants.CLIBinaryName + " version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", constants.CLIBinaryName, version)
		},
	}
}
