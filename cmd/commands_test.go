package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

// setupEnv points the commands at a fresh SQLite file.
func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BUSINESS_NAME", "Lanka Furniture")
	t.Setenv("BUSINESS_PHONE", "077 123 4567")
	t.Setenv("INVOICER_STORE_DSN", filepath.Join(dir, "invoicer.db"))
	t.Setenv("INVOICER_OUTPUT_DIR", dir)
}

// run executes the root command with args and returns what it printed.
// Flags are reset afterwards since cobra keeps them between executions.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		args = []string{} // nil would make cobra read os.Args
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	defer func() {
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("invoicer %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func preview(t *testing.T) invoice.Preview {
	t.Helper()
	var p invoice.Preview
	if err := json.Unmarshal([]byte(mustRun(t, "show", "--json")), &p); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	return p
}

func TestSetDateBeforeSequence(t *testing.T) {
	setupEnv(t)

	// Flag order on the command line does not matter: the date is applied
	// first, so the sequence lands in the new date's year.
	mustRun(t, "set", "--sequence", "7", "--date", "2019-03-01")

	p := preview(t)
	if p.Invoice.InvoiceNumber != "INV-2019-0007" || p.Invoice.Date != "2019-03-01" {
		t.Errorf("number/date = %q %q", p.Invoice.InvoiceNumber, p.Invoice.Date)
	}
	if out := mustRun(t, "counter", "show", "2019"); !strings.Contains(out, "last used INV-2019-0007, next INV-2019-0008") {
		t.Errorf("counter show 2019 = %q", out)
	}

	// A later date change only reformats; no counter moves.
	mustRun(t, "set", "--date", "2018-12-31")
	if got := preview(t).Invoice.InvoiceNumber; got != "INV-2018-0007" {
		t.Errorf("after date change = %q", got)
	}
	if out := mustRun(t, "counter", "show", "2018"); !strings.Contains(out, "last used INV-2018-0000") {
		t.Errorf("counter show 2018 = %q", out)
	}
}

func TestSetInvalidDateKeepsDraft(t *testing.T) {
	setupEnv(t)
	mustRun(t, "set", "--customer", "Nimal")

	if _, err := run(t, "set", "--date", "14/02/2026", "--customer", "Other"); err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Errorf("invalid date error = %v", err)
	}
	if got := preview(t).Invoice.CustomerName; got != "Nimal" {
		t.Errorf("customer = %q, want unchanged", got)
	}
}

func TestSetDiscountValueKeepsType(t *testing.T) {
	setupEnv(t)
	mustRun(t, "item", "update", "1", "--description", "Sofa", "--size", "6ft", "--price", "1000")

	mustRun(t, "set", "--discount-type", "percent", "--discount-value", "10")
	mustRun(t, "set", "--discount-value", "20")

	p := preview(t)
	want := &models.Discount{Type: models.DiscountPercent, Value: 20}
	if p.Invoice.Discount == nil || *p.Invoice.Discount != *want {
		t.Fatalf("discount = %+v, want %+v", p.Invoice.Discount, want)
	}
	if p.Totals.DiscountAmount != 200 || p.Totals.Total != 800 {
		t.Errorf("totals = %+v", p.Totals)
	}

	mustRun(t, "set", "--no-discount")
	mustRun(t, "set", "--discount-value", "150")
	if d := preview(t).Invoice.Discount; d == nil || d.Type != models.DiscountAmount || d.Value != 150 {
		t.Errorf("value without type on no discount = %+v, want amount 150", d)
	}

	if _, err := run(t, "set", "--discount-type", "coupon"); err == nil || !strings.Contains(err.Error(), "amount or percent") {
		t.Errorf("invalid discount type error = %v", err)
	}
}

func TestItemCommands(t *testing.T) {
	setupEnv(t)

	mustRun(t, "item", "update", "1", "--description", "Sofa", "--size", "6ft", "--price", "25000", "--quantity", "2")
	mustRun(t, "item", "add", "--description", "Cushion", "--size", "S", "--price", "1250", "--quantity", "0")

	p := preview(t)
	if len(p.Invoice.Items) != 2 {
		t.Fatalf("items = %+v", p.Invoice.Items)
	}
	if p.Invoice.Items[1].Quantity != 1 {
		t.Errorf("quantity below 1 not raised: %d", p.Invoice.Items[1].Quantity)
	}
	if p.Totals.Subtotal != 51250 || len(p.Problems) != 0 {
		t.Errorf("totals = %+v, problems = %q", p.Totals, p.Problems)
	}

	if _, err := run(t, "item", "update", "5", "--price", "1"); err == nil || !strings.Contains(err.Error(), "no item 5") {
		t.Errorf("update of missing item = %v", err)
	}

	mustRun(t, "item", "remove", "1")
	if _, err := run(t, "item", "remove", "1"); err == nil || !strings.Contains(err.Error(), "at least one item") {
		t.Errorf("removing the last item = %v", err)
	}
	if items := preview(t).Invoice.Items; len(items) != 1 || items[0].Description != "Cushion" {
		t.Errorf("items after remove = %+v", items)
	}
}

func TestValidateAndExport(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "validate")
	if err == nil || !strings.Contains(out, "Item 1: description is required.") {
		t.Errorf("validate on blank draft = %q, %v", out, err)
	}
	if _, err := run(t, "export"); err == nil {
		t.Error("export of a blank draft succeeded")
	}

	mustRun(t, "item", "update", "1", "--description", "Sofa", "--size", "6ft", "--price", "25000")
	mustRun(t, "validate")

	dir := t.TempDir()
	out = mustRun(t, "export", "--format", "png", "--output-dir", dir)
	if !strings.Contains(out, filepath.Join(dir, preview(t).Invoice.InvoiceNumber)) || !strings.HasSuffix(strings.TrimSpace(out), ".png") {
		t.Errorf("export output = %q", out)
	}
}

func TestNewAdvancesCounter(t *testing.T) {
	setupEnv(t)
	mustRun(t, "set", "--date", "2019-05-05", "--sequence", "41", "--customer", "Nimal", "--show-words")

	mustRun(t, "new")

	p := preview(t)
	if p.Invoice.CustomerName != "" || !p.Invoice.ShowTotalInWords {
		t.Errorf("after new = %+v", p.Invoice)
	}
	if out := mustRun(t, "counter", "show", "2019"); !strings.Contains(out, "INV-2019-0041") {
		t.Errorf("counter for the previous invoice's year = %q", out)
	}
	if got := invoice.ExtractSequence(p.Invoice.InvoiceNumber); got < 1 {
		t.Errorf("new number = %q", p.Invoice.InvoiceNumber)
	}

	mustRun(t, "counter", "set", "2019", "3")
	if out := mustRun(t, "counter", "show", "2019"); !strings.Contains(out, "last used INV-2019-0003, next INV-2019-0004") {
		t.Errorf("counter after manual set = %q", out)
	}
}

func TestRootPrintsPreview(t *testing.T) {
	setupEnv(t)
	mustRun(t, "set", "--customer", "Nimal")

	out := mustRun(t)
	if !strings.Contains(out, "Bill to: Nimal") || !strings.Contains(out, "Total") {
		t.Errorf("invoicer without arguments = %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("root command printed JSON: %q", out)
	}
}
