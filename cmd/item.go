package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"invoicer/internal/invoice"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Add, change or remove line items",
	Long: `Manage the line items of the current invoice. Items are numbered from 1
in the order shown by 'invoicer show'. Quantities below 1 are raised to 1 and
negative prices to 0. The last remaining item cannot be removed.`,
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a line item",
	Example: `  invoicer item add --description "Teak sofa" --size "6ft" --quantity 2 --price 25000`,
	Args:    cobra.NoArgs,
	RunE:    runItemAdd,
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update <item-number>",
	Short: "Change fields of a line item",
	Example: `  # Change the price of the second item
  invoicer item update 2 --price 1250`,
	Args: cobra.ExactArgs(1),
	RunE: runItemUpdate,
}

var itemRemoveCmd = &cobra.Command{
	Use:     "remove <item-number>",
	Aliases: []string{"rm"},
	Short:   "Remove a line item",
	Example: `  invoicer item remove 2`,
	Args:    cobra.ExactArgs(1),
	RunE:    runItemRemove,
}

func init() {
	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemAddCmd, itemUpdateCmd, itemRemoveCmd)

	for _, c := range []*cobra.Command{itemAddCmd, itemUpdateCmd} {
		c.Flags().String("description", "", "Item description")
		c.Flags().String("size", "", "Item size")
		c.Flags().Int64("quantity", 1, "Quantity (at least 1)")
		c.Flags().Int64("price", 0, "Unit price in whole rupees")
	}
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd, "item", func(ctx context.Context, s *session) error {
		invoice.AddItem(s.inv)
		position := len(s.inv.Items)
		if err := invoice.UpdateItem(s.inv, position-1, itemPatch(cmd)); err != nil {
			return friendlyError(err)
		}
		s.save(ctx)

		s.log.Info().
			Str("invoice_number", s.inv.InvoiceNumber).
			Int("position", position).
			Msg("Item added")

		fmt.Fprintf(cmd.OutOrStdout(), "Added item %d\n", position)
		return nil
	})
}

func runItemUpdate(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	patch := itemPatch(cmd)
	if patch == (invoice.ItemPatch{}) {
		return fmt.Errorf("nothing to change. Pass --description, --size, --quantity or --price")
	}

	return withSession(cmd, "item", func(ctx context.Context, s *session) error {
		if err := invoice.UpdateItem(s.inv, position-1, patch); err != nil {
			return friendlyError(err)
		}
		s.save(ctx)

		s.log.Info().
			Str("invoice_number", s.inv.InvoiceNumber).
			Int("position", position).
			Msg("Item updated")

		fmt.Fprintf(cmd.OutOrStdout(), "Updated item %d\n", position)
		return nil
	})
}

func runItemRemove(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	return withSession(cmd, "item", func(ctx context.Context, s *session) error {
		if err := invoice.RemoveItem(s.inv, position-1); err != nil {
			return friendlyError(err)
		}
		s.save(ctx)

		s.log.Info().
			Str("invoice_number", s.inv.InvoiceNumber).
			Int("position", position).
			Int("remaining", len(s.inv.Items)).
			Msg("Item removed")

		fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d\n", position)
		return nil
	})
}

// itemPatch collects the item flags that were passed.
func itemPatch(cmd *cobra.Command) invoice.ItemPatch {
	flags := cmd.Flags()
	var p invoice.ItemPatch
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		p.Description = &v
	}
	if flags.Changed("size") {
		v, _ := flags.GetString("size")
		p.Size = &v
	}
	if flags.Changed("quantity") {
		v, _ := flags.GetInt64("quantity")
		p.Quantity = &v
	}
	if flags.Changed("price") {
		v, _ := flags.GetInt64("price")
		p.UnitPrice = &v
	}
	return p
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid item number %q. Use the number shown by 'invoicer show'", arg)
	}
	return n, nil
}
