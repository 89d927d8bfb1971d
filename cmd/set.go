package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change invoice details",
	Long: `Change the date, number, customer, discount, bank details or display
settings of the current invoice. Only the flags you pass are changed.

Changing the date keeps the sequence and moves it to the new date's year;
no new number is used up. Setting --sequence records it as the last used
sequence for the invoice's year, so the next new invoice continues from it.
A lower sequence than before is allowed.`,
	Example: `  # Customer and date
  invoicer set --customer "Nimal Perera" --date 2026-02-14

  # Renumber the open invoice to INV-<year>-0042
  invoicer set --sequence 42

  # 10 percent discount, or a fixed Rs. 500
  invoicer set --discount-type percent --discount-value 10
  invoicer set --discount-type amount --discount-value 500
  invoicer set --no-discount

  # Print bank details and the total in words
  invoicer set --show-bank --bank-name "A. Perera" --bank-account 1234567890 \
    --bank "Sample Bank" --bank-branch Kandy --show-words`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().String("date", "", "Invoice date (format: YYYY-MM-DD)")
	setCmd.Flags().String("customer", "", "Customer name")
	setCmd.Flags().Int("sequence", 0, "Invoice sequence for the invoice's year (0-9999)")
	setCmd.Flags().Bool("show-bank", false, "Print bank account details")
	setCmd.Flags().Bool("show-words", false, "Print the total in words")
	setCmd.Flags().String("discount-type", "", "Discount type: amount or percent")
	setCmd.Flags().Int64("discount-value", 0, "Discount value (whole rupees or percent)")
	setCmd.Flags().Bool("no-discount", false, "Remove the discount")
	setCmd.Flags().String("bank-name", "", "Account holder name")
	setCmd.Flags().String("bank-account", "", "Account number")
	setCmd.Flags().String("bank", "", "Bank name")
	setCmd.Flags().String("bank-branch", "", "Bank branch")

	setCmd.MarkFlagsMutuallyExclusive("no-discount", "discount-type")
	setCmd.MarkFlagsMutuallyExclusive("no-discount", "discount-value")
}

func runSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.NFlag() == 0 {
		return fmt.Errorf("nothing to change. See 'invoicer set --help'")
	}

	return withSession(cmd, "set", func(ctx context.Context, s *session) error {
		inv := s.inv
		numbering := s.ws.Numbering()

		if flags.Changed("date") {
			value, _ := flags.GetString("date")
			date, err := invoice.ParseDate(value)
			if err != nil {
				return friendlyError(err)
			}
			numbering.ChangeDate(inv, date.Format(invoice.DateLayout))
		}

		if flags.Changed("sequence") {
			seq, _ := flags.GetInt("sequence")
			inv.InvoiceNumber = numbering.ManualSet(ctx, numbering.Year(inv.Date), seq)
		}

		if flags.Changed("customer") {
			inv.CustomerName, _ = flags.GetString("customer")
		}

		if err := applyDiscountFlags(cmd, inv); err != nil {
			return friendlyError(err)
		}

		if flags.Changed("show-bank") {
			inv.ShowBankDetails, _ = flags.GetBool("show-bank")
		}
		if flags.Changed("show-words") {
			inv.ShowTotalInWords, _ = flags.GetBool("show-words")
		}
		for flag, field := range map[string]*string{
			"bank-name":    &inv.BankDetails.Name,
			"bank-account": &inv.BankDetails.AccountNumber,
			"bank":         &inv.BankDetails.Bank,
			"bank-branch":  &inv.BankDetails.Branch,
		} {
			if flags.Changed(flag) {
				*field, _ = flags.GetString(flag)
			}
		}

		s.save(ctx)

		s.log.Info().
			Str("invoice_number", inv.InvoiceNumber).
			Int("flags", flags.NFlag()).
			Msg("Invoice updated")

		printPreview(cmd.OutOrStdout(), invoice.BuildPreview(inv))
		return nil
	})
}

// applyDiscountFlags sets or clears the discount. A value without a type
// keeps the current type, or uses amount when there is no discount yet.
func applyDiscountFlags(cmd *cobra.Command, inv *models.Invoice) error {
	flags := cmd.Flags()

	if remove, _ := flags.GetBool("no-discount"); remove {
		invoice.ClearDiscount(inv)
		return nil
	}
	if !flags.Changed("discount-type") && !flags.Changed("discount-value") {
		return nil
	}

	typ := models.DiscountAmount
	var value int64
	if inv.Discount != nil {
		typ, value = inv.Discount.Type, inv.Discount.Value
	}
	if flags.Changed("discount-type") {
		t, _ := flags.GetString("discount-type")
		typ = models.DiscountType(t)
	}
	if flags.Changed("discount-value") {
		value, _ = flags.GetInt64("discount-value")
	}
	return invoice.SetDiscount(inv, typ, value)
}
