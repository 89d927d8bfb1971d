package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"invoicer/internal/export"
	"invoicer/internal/invoice"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview the current invoice with its totals",
	Long: `Print the current draft with line totals, subtotal, discount and total.

The amount in words is included when it is switched on for the invoice
(invoicer set --show-words). Problems that would block an export are listed
at the end.`,
	Example: `  # Print the preview
  invoicer show

  # Machine readable preview
  invoicer show --json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "Print the preview as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	return showPreview(cmd, asJSON)
}

// showPreview prints the current draft as text or JSON.
func showPreview(cmd *cobra.Command, asJSON bool) error {
	return withSession(cmd, "show", func(ctx context.Context, s *session) error {
		preview := invoice.BuildPreview(s.inv)
		out := cmd.OutOrStdout()

		if asJSON {
			data, err := json.MarshalIndent(preview, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to create JSON output: %w", err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}
		printPreview(out, preview)
		return nil
	})
}

func printPreview(w io.Writer, p invoice.Preview) {
	inv := p.Invoice
	sheet := export.BuildSheet(inv)

	fmt.Fprintf(w, "%s  %s\n", inv.InvoiceNumber, inv.Date)
	if inv.CustomerName != "" {
		fmt.Fprintf(w, "Bill to: %s\n", inv.CustomerName)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-3s %-30s %-10s %5s %14s %14s\n", "#", "Description", "Size", "Qty", "Unit Price", "Amount")
	for i, row := range sheet.Items {
		fmt.Fprintf(w, "%-3d %-30s %-10s %5s %14s %14s\n",
			i+1, row.Description, row.Size, row.Quantity, row.UnitPrice, row.Amount)
	}
	fmt.Fprintln(w)

	for _, f := range sheet.Totals {
		fmt.Fprintf(w, "%66s %14s\n", f.Label, f.Value)
	}
	if p.TotalInWords != "" {
		fmt.Fprintf(w, "\n%s\n", p.TotalInWords)
	}

	if inv.ShowBankDetails {
		b := inv.BankDetails
		fmt.Fprintf(w, "\nAccount Details: %s, %s, %s, %s\n", b.Name, b.AccountNumber, b.Bank, b.Branch)
	}

	if len(p.Problems) > 0 {
		fmt.Fprintln(w, "\nNot ready for export:")
		for _, problem := range p.Problems {
			fmt.Fprintf(w, "  - %s\n", problem)
		}
	}
}
