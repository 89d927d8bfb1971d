package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"invoicer/pkg/models"
)

// ItemPatch holds the fields to change on a line item; nil fields are kept.
type ItemPatch struct {
	Description *string
	Size        *string
	Quantity    *int64
	UnitPrice   *int64
}

// NewLineItem returns a blank item with quantity 1 and price 0.
func NewLineItem() models.LineItem {
	return models.LineItem{
		ID:       uuid.NewString(),
		Quantity: 1,
	}
}

// New instantiates a draft dated today with one blank item and the next
// number for the current year. The number is not consumed until the invoice
// is superseded by StartNewInvoice.
func New(ctx context.Context, numbering *Numbering, business models.BusinessProfile, profile models.Profile) *models.Invoice {
	today := numbering.Today()
	inv := &models.Invoice{
		Date:          today,
		InvoiceNumber: numbering.Peek(ctx, numbering.Year(today)),
		Items:         []models.LineItem{NewLineItem()},
		Business:      business,
	}
	ApplyProfile(inv, profile)
	return inv
}

// Reset turns inv into the next draft: fresh number and date, one blank item,
// no customer and no discount. The business profile, bank details and the
// display toggles are device settings and are carried forward.
func Reset(inv *models.Invoice, number, date string) {
	inv.Date = date
	inv.InvoiceNumber = number
	inv.CustomerName = ""
	inv.Items = []models.LineItem{NewLineItem()}
	inv.Discount = nil
}

// AddItem appends a blank line item and returns it.
func AddItem(inv *models.Invoice) models.LineItem {
	item := NewLineItem()
	inv.Items = append(inv.Items, item)
	return item
}

// UpdateItem applies patch to the item at index (0-based). Quantity is floored
// at 1 and unit price at 0, mirroring the editor inputs.
func UpdateItem(inv *models.Invoice, index int, patch ItemPatch) error {
	if index < 0 || index >= len(inv.Items) {
		return &ItemError{Op: "UpdateItem", Position: index + 1, Err: ErrItemIndex}
	}

	it := &inv.Items[index]
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Size != nil {
		it.Size = *patch.Size
	}
	if patch.Quantity != nil {
		it.Quantity = max(1, *patch.Quantity)
	}
	if patch.UnitPrice != nil {
		it.UnitPrice = max(0, *patch.UnitPrice)
	}
	return nil
}

// RemoveItem deletes the item at index (0-based). The last remaining item
// cannot be removed.
func RemoveItem(inv *models.Invoice, index int) error {
	if index < 0 || index >= len(inv.Items) {
		return &ItemError{Op: "RemoveItem", Position: index + 1, Err: ErrItemIndex}
	}
	if len(inv.Items) <= 1 {
		return &ItemError{Op: "RemoveItem", Position: index + 1, Err: ErrLastItem}
	}

	inv.Items = append(inv.Items[:index:index], inv.Items[index+1:]...)
	return nil
}

// SetDiscount replaces the discount. Negative values become 0 and percent
// values are capped at 100; amount values are stored as given and only
// clamped when totals are computed.
func SetDiscount(inv *models.Invoice, typ models.DiscountType, value int64) error {
	value = max(0, value)
	switch typ {
	case models.DiscountAmount:
	case models.DiscountPercent:
		value = min(value, 100)
	default:
		return ErrInvalidDiscountType
	}

	inv.Discount = &models.Discount{Type: typ, Value: value}
	return nil
}

// ClearDiscount removes any discount.
func ClearDiscount(inv *models.Invoice) {
	inv.Discount = nil
}

// ParseDate checks that s is an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ProfileOf extracts the device-level settings from an invoice.
func ProfileOf(inv *models.Invoice) models.Profile {
	return models.Profile{
		ShowBankDetails: inv.ShowBankDetails,
		BankDetails:     inv.BankDetails,
	}
}

// ApplyProfile copies device-level settings onto an invoice.
func ApplyProfile(inv *models.Invoice, p models.Profile) {
	inv.ShowBankDetails = p.ShowBankDetails
	inv.BankDetails = p.BankDetails
}

// Normalize repairs structural damage in a restored draft: an empty item
// list gets one blank item and items without an ID get one. Numeric values
// are left alone so the validator can still report them.
func Normalize(inv *models.Invoice) {
	if len(inv.Items) == 0 {
		inv.Items = []models.LineItem{NewLineItem()}
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
	}
}
