package models

// Amounts are whole minor currency units; there are no fractional cents anywhere.

// DiscountType selects how a Discount value is applied to the subtotal.
type DiscountType string

const (
	DiscountAmount  DiscountType = "amount"  // absolute deduction
	DiscountPercent DiscountType = "percent" // proportional deduction, 0..100
)

type LineItem struct {
	ID          string `json:"id"`          // Opaque unique identifier
	Description string `json:"description"` // What is being sold
	Size        string `json:"size"`        // Free text size/dimension, e.g. "6ft"
	Quantity    int64  `json:"quantity"`    // At least 1
	UnitPrice   int64  `json:"unitPrice"`   // Price per unit, never negative
}

type Discount struct {
	Type  DiscountType `json:"type"`
	Value int64        `json:"value"` // Amount values may exceed the subtotal; clamped when computing
}

type BankDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	Bank          string `json:"bank"`
	Branch        string `json:"branch"`
}

// BusinessProfile is the seller block printed on every invoice. It comes from
// configuration and is not edited per invoice.
type BusinessProfile struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Social string `json:"social,omitempty"`
}

type Invoice struct {
	Date          string     `json:"date"`          // ISO calendar date, YYYY-MM-DD
	InvoiceNumber string     `json:"invoiceNumber"` // INV-YYYY-NNNN
	CustomerName  string     `json:"customerName"`
	Items         []LineItem `json:"items"`    // Insertion order is the printed order
	Discount      *Discount  `json:"discount"` // nil means no discount

	// Display toggles
	ShowBankDetails  bool        `json:"showBankDetails"`
	BankDetails      BankDetails `json:"bankDetails"`
	ShowTotalInWords bool        `json:"showTotalInWords"`

	Business BusinessProfile `json:"business"`
}

// Profile is the device-level default that survives across invoices.
type Profile struct {
	ShowBankDetails bool        `json:"showBankDetails"`
	BankDetails     BankDetails `json:"bankDetails"`
}

// YearCounter holds the last sequence handed out for one calendar year.
type YearCounter struct {
	Year             int `json:"year"`
	LastUsedSequence int `json:"lastUsedSequence"`
}

// Totals are the derived values shown on the invoice.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discountAmount"`
	Total          int64 `json:"total"`
}
