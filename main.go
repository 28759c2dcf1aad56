// =============================================================================
// Holded Stock Report - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Holded Stock Report CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   stockreport report --doc <number>  - Generate the report workbooks
//   stockreport version                - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//       config/      : yaml configuration + environment credentials
//       holded/      : paginated Holded API client
//       catalog/     : catalog index builder
//       resolver/    : line-item resolver
//       report/      : grouping, assembly, pallet estimation
//       validation/  : report invariant checks
//       xlsxwriter/  : xlsx export
//   - pkg/           : shared utilities (output files, archival)
//
// =============================================================================

package main

import (
	"github.com/jmfernandez-ops/holded-stock-report/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
