// =============================================================================
// Holded Stock Report - Report Command
// =============================================================================
//
// This file defines the 'report' command, which runs the whole pipeline for
// one sales document.
//
// COMMAND USAGE:
//   stockreport report --doc <docNumber> [flags]
//
// FLAGS:
//   --doc         : Document number to report on (required)
//   --dry-run     : Run the pipeline without writing output files
//   --output-dir  : Override the configured output directory
//
// PROCESSING PIPELINE:
//   1. Load configuration and credentials
//   2. Locate the document across the configured document types
//   3. Fetch the full product catalog and build the lookup index
//   4. Resolve every line item against the index
//   5. Group by product line and compute subtotals
//   6. Assemble the report table and validate its invariants
//   7. Estimate the required pallet count
//   8. Write the stock and pallet workbooks (and archive copies)
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jmfernandez-ops/holded-stock-report/internal/catalog"
	"github.com/jmfernandez-ops/holded-stock-report/internal/config"
	"github.com/jmfernandez-ops/holded-stock-report/internal/holded"
	"github.com/jmfernandez-ops/holded-stock-report/internal/report"
	"github.com/jmfernandez-ops/holded-stock-report/internal/resolver"
	"github.com/jmfernandez-ops/holded-stock-report/internal/validation"
	"github.com/jmfernandez-ops/holded-stock-report/internal/xlsxwriter"
	"github.com/jmfernandez-ops/holded-stock-report/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// docNumber is the document number to report on.
var docNumber string

// dryRun runs the pipeline without writing output files.
var dryRun bool

// outputDir overrides the configured output directory when set.
var outputDir string

// =============================================================================
// REPORT COMMAND DEFINITION
// =============================================================================

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the stock & pallet report for one sales document",
	Long: `The report command looks the document number up across all configured
document types (estimates, proformas, sales orders), joins its line items
to the product catalog, and produces two xlsx workbooks: the per-product-
line stock table and the pallet summary.

Catalog misses are not errors: such lines fall back to their inline
name/sku/weight, with stock reported as unknown rather than zero.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the report command and sets up its flags.
func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(
		&docNumber,
		"doc",
		"",
		"Document number to report on (searched across all document types)",
	)
	reportCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)
	reportCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Override the configured output directory",
	)

	_ = reportCmd.MarkFlagRequired("doc")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runReport runs the whole report pipeline for one document.
func runReport(cmd *cobra.Command) error {
	startTime := time.Now()
	ctx := cmd.Context()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION AND CREDENTIALS
	// =========================================================================

	fmt.Println("=== Holded Stock Report ===")

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return err
	}

	client := holded.NewClient(cfg, creds)

	// =========================================================================
	// STEP 2: LOCATE THE DOCUMENT
	// =========================================================================
	// The number is searched in each configured document type in order;
	// matching is case-insensitive.

	fmt.Printf("Searching for document %q...\n", docNumber)

	docType, doc, err := client.FindDocument(ctx, docNumber)
	if err != nil {
		return err
	}

	fmt.Printf("Found %s %q\n", docType, doc.DocNumber)

	// =========================================================================
	// STEP 3: FETCH THE CATALOG AND BUILD THE INDEX
	// =========================================================================

	fmt.Println("Fetching product catalog...")

	products, err := client.FetchAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	index := catalog.BuildIndex(products)
	if verbose {
		fmt.Printf("Indexed %d of %d catalog products\n", len(index), len(products))
	}

	// =========================================================================
	// STEP 4: RESOLVE LINE ITEMS
	// =========================================================================
	// A malformed line-item container is fatal for the document; every
	// other irregularity degrades to a defined default.

	lines, err := resolver.ResolveDocument(doc, index)
	if err != nil {
		return fmt.Errorf("failed to resolve line items: %w", err)
	}

	fmt.Printf("Resolved %d line item(s)\n", len(lines))

	// =========================================================================
	// STEP 5: GROUP AND ASSEMBLE
	// =========================================================================

	groups := report.GroupLines(lines)
	rep := report.Assemble(groups)

	fmt.Printf("Grouped into %d product line(s)\n", len(groups))

	// =========================================================================
	// STEP 6: VALIDATE
	// =========================================================================
	// A report that fails its own invariants must never be exported.

	if violations := validation.Validate(rep); len(violations) > 0 {
		for _, v := range violations {
			fmt.Printf("  ✗ %s\n", v.Error())
		}
		return fmt.Errorf("report failed validation with %d error(s)", len(violations))
	}

	// =========================================================================
	// STEP 7: ESTIMATE PALLETS
	// =========================================================================

	estimate := report.EstimatePallets(rep.Totals(), report.Capacities{
		WeightKg: decimal.NewFromFloat(cfg.Pallets.WeightCapacityKg),
		VolumeM3: decimal.NewFromFloat(cfg.Pallets.VolumeCapacityM3),
	})

	fmt.Printf("Totals: %s units, %s kg, %s m³\n",
		estimate.TotalUnits, estimate.TotalWeight.StringFixed(2), estimate.TotalVolume.StringFixed(3))
	fmt.Printf("Pallets needed: %d (by weight %s, by volume %s)\n",
		estimate.PalletsNeeded, estimate.PalletsByWeight, estimate.PalletsByVolume)

	// =========================================================================
	// STEP 8: WRITE OUTPUT WORKBOOKS
	// =========================================================================

	if dryRun {
		fmt.Println("\nDry run: no files written.")
		return nil
	}

	if err := utils.EnsureDir(cfg.Output.Dir); err != nil {
		return err
	}

	stockPath := filepath.Join(cfg.Output.Dir, utils.BuildFileName(cfg.Output.StockFilename, doc.DocNumber))
	if err := xlsxwriter.WriteStockReport(rep, stockPath); err != nil {
		return fmt.Errorf("failed to write stock workbook: %w", err)
	}

	palletPath := filepath.Join(cfg.Output.Dir, utils.BuildFileName(cfg.Output.PalletFilename, doc.DocNumber))
	if err := xlsxwriter.WritePalletSummary(estimate, palletPath); err != nil {
		return fmt.Errorf("failed to write pallet workbook: %w", err)
	}

	for _, path := range []string{stockPath, palletPath} {
		if err := utils.ArchiveCopy(path, cfg.Output.ArchiveDir); err != nil {
			// Archival failure does not invalidate the generated report.
			fmt.Printf("  ! archive copy failed: %v\n", err)
		}
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	fmt.Println("\n=== Report Complete ===")
	fmt.Printf("Stock workbook:  %s\n", stockPath)
	fmt.Printf("Pallet workbook: %s\n", palletPath)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	return nil
}
