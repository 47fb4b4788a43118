// Command chartkit renders chart definitions to SVG and PNG, previews them
// in the terminal, and serves them over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chartkit/chartkit/internal/cli"
	"github.com/chartkit/chartkit/pkg/buildinfo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
