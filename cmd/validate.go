package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
)

// errNotExportable signals a failed check; the problems are already printed.
var errNotExportable = errors.New("invoice is not ready for export")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether the invoice can be exported",
	Long: `List every problem that blocks exporting the current invoice. Every
item needs a description, a size, a quantity of at least 1 and a price that
is not negative. When bank details are shown, all four fields are required.

The command exits with a non-zero status when the invoice is not ready.`,
	Example: `  invoicer validate && invoicer export`,
	Args:    cobra.NoArgs,
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	return withSession(cmd, "validate", func(ctx context.Context, s *session) error {
		problems := invoice.ValidateForExport(s.inv)
		out := cmd.OutOrStdout()

		if len(problems) == 0 {
			fmt.Fprintf(out, "%s is ready for export\n", s.inv.InvoiceNumber)
			return nil
		}
		printProblems(cmd, problems)
		return errNotExportable
	})
}

func printProblems(cmd *cobra.Command, problems []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Please fix the following before exporting:")
	for _, p := range problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}
}
