package export

import (
	"regexp"
	"strings"

	"invoicer/pkg/models"
)

// MaxNamePart caps each user supplied part of a file name.
const MaxNamePart = 40

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeName keeps letters, digits, hyphens and underscores. Every other
// run of characters becomes a single hyphen; the result is at most
// MaxNamePart bytes long.
func SanitizeName(s string) string {
	s = unsafeRun.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxNamePart {
		s = strings.TrimRight(s[:MaxNamePart], "-")
	}
	return s
}

// Filename suggests a download name: {number}_{date}[_{customer}].{ext}.
func Filename(inv *models.Invoice, ext string) string {
	parts := []string{
		orDefault(SanitizeName(inv.InvoiceNumber), "invoice"),
		orDefault(SanitizeName(inv.Date), "draft"),
	}
	if customer := SanitizeName(inv.CustomerName); customer != "" {
		parts = append(parts, customer)
	}
	return strings.Join(parts, "_") + "." + ext
}

// Title is the document title embedded in exported files.
func Title(inv *models.Invoice) string {
	return strings.TrimSpace("Invoice " + inv.InvoiceNumber + " " + inv.Date)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
