// Command cloudlint validates YAML documents with external linting tools.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/javascriptjoey/cloudlint/pkg/cli"
	"github.com/javascriptjoey/cloudlint/pkg/console"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env for local configuration; a missing file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
