package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"invoicer/internal/export"
	"invoicer/internal/invoice"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current invoice as PDF or PNG",
	Long: `Validate the current invoice and write it as an A4 PDF or PNG file.

The file is named {invoice number}_{date}_{customer}.{pdf|png} and written
to --output-dir (default: INVOICER_OUTPUT_DIR, or the current directory).
Nothing is written when validation fails; run 'invoicer validate' to see the
problems. The draft stays as it is, so a failed export can simply be retried.`,
	Example: `  # PDF into the configured output directory
  invoicer export

  # PNG into a specific directory
  invoicer export --format png --output-dir ~/invoices`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "pdf", "Output format: pdf or png")
	exportCmd.Flags().StringP("output-dir", "o", "", "Output directory (default: INVOICER_OUTPUT_DIR)")
}

func runExport(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Use pdf or png", formatFlag)
	}

	return withSession(cmd, "export", func(ctx context.Context, s *session) error {
		if outputDir == "" {
			outputDir = s.cfg.OutputDir
		}

		s.log.Info().
			Str("invoice_number", s.inv.InvoiceNumber).
			Str("format", string(format)).
			Str("output_dir", outputDir).
			Msg("Starting export")

		path, err := export.NewExporter(s.ws).Export(ctx, s.inv, format, outputDir)
		if err != nil {
			return handleExportError(cmd, format, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
		return nil
	})
}

// handleExportError turns export failures into messages for the terminal.
// Pipeline failures all read the same; the details are in the log.
func handleExportError(cmd *cobra.Command, format export.Format, err error) error {
	var problems invoice.ValidationErrors
	switch {
	case errors.As(err, &problems):
		printProblems(cmd, problems)
		return errNotExportable
	case errors.Is(err, export.ErrUnsupportedFormat):
		return fmt.Errorf("unsupported format %q. Use pdf or png", format)
	default:
		return fmt.Errorf("%s export failed. Please try again.", strings.ToUpper(string(format)))
	}
}
