// Package cli implements the chartkit command-line interface.
//
// This package provides commands for rendering chart definitions to SVG and
// PNG, previewing them in the terminal, serving them over HTTP, and managing
// the local render cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Render a TOML chart definition to SVG or PNG
//   - preview: Plot a definition's series in the terminal
//   - serve: Run the chart rendering HTTP server
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/chartkit/chartkit/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

// appName is used for user-facing paths and messages.
const appName = "chartkit"
