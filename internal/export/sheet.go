package export

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

const footerNote = "Thank you for your order."

var amountPrinter = message.NewPrinter(language.English)

// Field is a labelled value on the sheet.
type Field struct {
	Label string
	Value string
}

// Row is one printed line item.
type Row struct {
	Description string
	Size        string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// Sheet is the paper layout of an invoice with every value already
// formatted. Renderers only place it on a page.
type Sheet struct {
	Title    string
	Business []string // name first, then contact lines
	Meta     []Field  // invoice number, date, bill to
	Items    []Row
	Totals   []Field // subtotal, discount when non-zero, total last

	TotalInWords string              // empty when hidden
	Bank         *models.BankDetails // nil when hidden

	FooterLeft  string
	FooterRight string
}

// FormatRs formats a whole amount with thousands separators, e.g. "Rs. 50,000".
func FormatRs(amount int64) string {
	return amountPrinter.Sprintf("Rs. %d", amount)
}

// BuildSheet lays out inv. Totals are recomputed from the items; the words
// line and the bank table only appear when the invoice enables them.
func BuildSheet(inv *models.Invoice) Sheet {
	totals := invoice.CalcTotals(inv.Items, inv.Discount)

	s := Sheet{
		Title:       Title(inv),
		Business:    []string{inv.Business.Name, inv.Business.Phone},
		FooterLeft:  footerNote,
		FooterRight: inv.Business.Phone,
	}
	for _, extra := range []string{inv.Business.Email, inv.Business.Social} {
		if extra != "" {
			s.Business = append(s.Business, extra)
		}
	}

	s.Meta = []Field{
		{Label: "Invoice No", Value: inv.InvoiceNumber},
		{Label: "Date", Value: inv.Date},
	}
	if inv.CustomerName != "" {
		s.Meta = append(s.Meta, Field{Label: "Bill To", Value: inv.CustomerName})
	}

	for _, it := range inv.Items {
		desc := it.Description
		if desc == "" {
			desc = "-"
		}
		s.Items = append(s.Items, Row{
			Description: desc,
			Size:        it.Size,
			Quantity:    strconv.FormatInt(it.Quantity, 10),
			UnitPrice:   FormatRs(it.UnitPrice),
			Amount:      FormatRs(invoice.LineTotal(it)),
		})
	}

	s.Totals = append(s.Totals, Field{Label: "Subtotal", Value: FormatRs(totals.Subtotal)})
	if totals.DiscountAmount > 0 {
		s.Totals = append(s.Totals, Field{Label: "Discount", Value: "- " + FormatRs(totals.DiscountAmount)})
	}
	s.Totals = append(s.Totals, Field{Label: "Total", Value: FormatRs(totals.Total)})

	if inv.ShowTotalInWords {
		s.TotalInWords = invoice.TotalToWords(float64(totals.Total))
	}
	if inv.ShowBankDetails {
		bank := inv.BankDetails
		s.Bank = &bank
	}

	return s
}
