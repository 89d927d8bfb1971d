package invoice

import (
	"fmt"
	"strings"

	"invoicer/pkg/models"
)

// ValidateForExport inspects a complete invoice and returns every problem
// that blocks export, in display order. An empty result means the invoice may
// be exported. Every rule is evaluated; the invoice is never modified.
func ValidateForExport(inv *models.Invoice) []string {
	errs := []string{}
	if inv == nil {
		return append(errs, "Add at least one item.")
	}

	if len(inv.Items) == 0 {
		errs = append(errs, "Add at least one item.")
	}

	for i, it := range inv.Items {
		pos := i + 1
		if isBlank(it.Description) {
			errs = append(errs, fmt.Sprintf("Item %d: description is required.", pos))
		}
		if isBlank(it.Size) {
			errs = append(errs, fmt.Sprintf("Item %d: size is required.", pos))
		}
		if it.Quantity < 1 {
			errs = append(errs, fmt.Sprintf("Item %d: quantity must be at least 1.", pos))
		}
		if it.UnitPrice < 0 {
			errs = append(errs, fmt.Sprintf("Item %d: price cannot be negative.", pos))
		}
	}

	if inv.ShowBankDetails {
		b := inv.BankDetails
		if isBlank(b.Name) {
			errs = append(errs, "Account Details: name is required.")
		}
		if isBlank(b.AccountNumber) {
			errs = append(errs, "Account Details: account number is required.")
		}
		if isBlank(b.Bank) {
			errs = append(errs, "Account Details: bank is required.")
		}
		if isBlank(b.Branch) {
			errs = append(errs, "Account Details: branch is required.")
		}
	}

	return errs
}

// CheckExportable is ValidateForExport in error form: nil when the invoice is
// exportable, ValidationErrors otherwise.
func CheckExportable(inv *models.Invoice) error {
	if errs := ValidateForExport(inv); len(errs) > 0 {
		return ValidationErrors(errs)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
