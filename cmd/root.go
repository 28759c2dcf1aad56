// =============================================================================
// Holded Stock Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('report', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (stockreport)
//   ├── reportCmd (stockreport report)
//   └── versionCmd (stockreport version)
//
// The root command owns the global flags (--config, --verbose); the
// individual commands load and use the configuration themselves.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "stockreport",

	Short: "Stock & pallet report generator for Holded sales documents",

	Long: `Stock Report is a CLI tool that retrieves a sales document (estimate,
proforma or sales order) and the product catalog from the Holded invoicing
API, joins line items to product attributes, and produces a
stock-availability and shipping-volume report grouped by product line,
with a pallet-count estimate.

Key Features:
  - Document lookup by number across all document types
  - Catalog join with inline fallback for uncatalogued products
  - Per-product-line subtotals and a grand total
  - Pallet estimation from weight and volume capacity constraints
  - XLSX export of the stock table and the pallet summary

Example Usage:
  stockreport report --doc PED240042        # Generate the report workbooks
  stockreport report --doc PED240042 --dry-run
  stockreport report --config ./my.yaml --doc P-1001

The Holded API key is read from the HOLDED_API_KEY environment variable.`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags shared by all commands.
func init() {
	// --config flag: Allows the user to specify a custom configuration
	// file. A missing file runs on the built-in defaults.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug output.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
