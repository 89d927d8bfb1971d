// Package invoice implements the invoice document model and its derived
// values.
//
// The package covers:
//   - Line item, discount and total arithmetic in whole currency units
//   - The amount-in-words line printed under the total
//   - The export readiness check
//   - Per-year invoice numbering (INV-YYYY-NNNN) over a pluggable counter store
//   - Editing operations on the draft document
//
// Derived values are never cached on the document. Callers recompute them
// from the current snapshot with CalcTotals or BuildPreview whenever they
// need them.
package invoice

import "invoicer/pkg/models"

// Preview is an invoice together with everything derived from it for display.
type Preview struct {
	Invoice *models.Invoice `json:"invoice"`
	Totals  models.Totals   `json:"totals"`

	// TotalInWords is only set when the invoice shows the total in words.
	TotalInWords string `json:"totalInWords,omitempty"`

	// Problems lists what currently blocks export.
	Problems []string `json:"problems"`
}

// BuildPreview derives totals, the words line and the export problems from
// the current state of inv.
func BuildPreview(inv *models.Invoice) Preview {
	p := Preview{
		Invoice:  inv,
		Totals:   CalcTotals(inv.Items, inv.Discount),
		Problems: ValidateForExport(inv),
	}
	if inv.ShowTotalInWords {
		p.TotalInWords = TotalToWords(float64(p.Totals.Total))
	}
	return p
}
