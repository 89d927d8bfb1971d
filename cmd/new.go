package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new invoice",
	Long: `Close the current draft and start the next invoice.

The current invoice's sequence is recorded for its year first, so a number
you changed by hand is not reused. The new invoice gets the next number for
today's year, today's date and one blank item. Bank details and the display
settings are kept.`,
	Example: `  invoicer new`,
	Args:    cobra.NoArgs,
	RunE:    runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	return withSession(cmd, "new", func(ctx context.Context, s *session) error {
		previous := s.inv.InvoiceNumber
		s.ws.StartNew(ctx, s.inv)

		fmt.Fprintf(cmd.OutOrStdout(), "Started %s (previous %s)\n", s.inv.InvoiceNumber, previous)
		return nil
	})
}
