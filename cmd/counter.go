package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Inspect or override the yearly invoice counters",
	Long: `Each calendar year has its own counter holding the last sequence handed
out. 'invoicer new' advances it by one; 'counter set' overrides it, including
moving it back to reissue or backfill numbers. Sequences are kept within
0-9999.`,
}

var counterShowCmd = &cobra.Command{
	Use:   "show [year]",
	Short: "Show the last used sequence and the next number for a year",
	Example: `  # Current year
  invoicer counter show

  invoicer counter show 2025`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCounterShow,
}

var counterSetCmd = &cobra.Command{
	Use:     "set <year> <sequence>",
	Short:   "Set the last used sequence for a year",
	Example: `  # The next new invoice in 2026 will be INV-2026-0101
  invoicer counter set 2026 100`,
	Args: cobra.ExactArgs(2),
	RunE: runCounterSet,
}

func init() {
	rootCmd.AddCommand(counterCmd)
	counterCmd.AddCommand(counterShowCmd, counterSetCmd)
}

func runCounterShow(cmd *cobra.Command, args []string) error {
	return withSession(cmd, "counter", func(ctx context.Context, s *session) error {
		numbering := s.ws.Numbering()

		year := numbering.Year(numbering.Today())
		if len(args) == 1 {
			y, err := parseYear(args[0])
			if err != nil {
				return err
			}
			year = y
		}

		last := numbering.LastUsed(ctx, year)
		fmt.Fprintf(cmd.OutOrStdout(), "Year %d: last used %s, next %s\n",
			year, invoice.FormatInvoiceNo(year, last), numbering.Peek(ctx, year))
		return nil
	})
}

func runCounterSet(cmd *cobra.Command, args []string) error {
	year, err := parseYear(args[0])
	if err != nil {
		return err
	}
	seq, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid sequence %q. Use a whole number between 0 and %d", args[1], invoice.MaxSequence)
	}

	return withSession(cmd, "counter", func(ctx context.Context, s *session) error {
		number := s.ws.Numbering().ManualSet(ctx, year, seq)

		fmt.Fprintf(cmd.OutOrStdout(), "Year %d: last used %s, next %s\n",
			year, number, s.ws.Numbering().Peek(ctx, year))
		return nil
	})
}

func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(arg)
	if err != nil || year < 1 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q. Use a four digit year such as 2026", arg)
	}
	return year, nil
}
