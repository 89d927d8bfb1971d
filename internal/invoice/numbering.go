package invoice

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

const (
	// DateLayout is the ISO calendar date format used for Invoice.Date.
	DateLayout = "2006-01-02"

	// MaxSequence is the largest sequence representable in four digits.
	MaxSequence = 9999
)

var trailingSequence = regexp.MustCompile(`(\d{1,4})$`)

// Counters is the per-year last-used sequence store. A year with no record
// reports 0 without an error.
type Counters interface {
	LastUsed(ctx context.Context, year int) (int, error)
	SetLastUsed(ctx context.Context, year, sequence int) error
}

// Numbering is the only component that reads or writes the yearly counters.
// Store failures never surface to callers: a failed read counts as an empty
// counter and a failed write is logged and dropped.
type Numbering struct {
	counters Counters
	now      func() time.Time
	log      zerolog.Logger
}

// NewNumbering creates a numbering authority over counters. A nil now uses
// the wall clock.
func NewNumbering(counters Counters, now func() time.Time) *Numbering {
	if now == nil {
		now = time.Now
	}
	return &Numbering{
		counters: counters,
		now:      now,
		log:      logger.WithComponent("numbering"),
	}
}

// FormatInvoiceNo renders INV-{year}-{sequence} with the sequence clamped to
// [0, 9999] and zero padded to four digits.
func FormatInvoiceNo(year, sequence int) string {
	return fmt.Sprintf("INV-%d-%04d", year, ClampSequence(sequence))
}

// ClampSequence forces a sequence into [0, MaxSequence].
func ClampSequence(sequence int) int {
	if sequence < 0 {
		return 0
	}
	if sequence > MaxSequence {
		return MaxSequence
	}
	return sequence
}

// DeriveYear reads the year from the first four characters of an ISO date,
// falling back to the year of now when they are not a number.
func DeriveYear(dateISO string, now time.Time) int {
	if len(dateISO) >= 4 {
		if y, err := strconv.Atoi(dateISO[:4]); err == nil {
			return y
		}
	}
	return now.Year()
}

// ExtractSequence parses the trailing run of up to four digits of an invoice
// number. Hand-edited or malformed numbers without one yield 0.
func ExtractSequence(invoiceNumber string) int {
	m := trailingSequence.FindStringSubmatch(invoiceNumber)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Today returns the current date in DateLayout.
func (n *Numbering) Today() string {
	return n.now().Format(DateLayout)
}

// Year derives the numbering year for an invoice date.
func (n *Numbering) Year(dateISO string) int {
	return DeriveYear(dateISO, n.now())
}

// LastUsed returns the last sequence handed out for year, 0 when unknown.
func (n *Numbering) LastUsed(ctx context.Context, year int) int {
	seq, err := n.counters.LastUsed(ctx, year)
	if err != nil {
		n.log.Warn().
			Err(err).
			Int("year", year).
			Msg("Failed to read invoice counter, treating as empty")
		return 0
	}
	return ClampSequence(seq)
}

// Peek returns the number Next would hand out without consuming it.
func (n *Numbering) Peek(ctx context.Context, year int) string {
	return FormatInvoiceNo(year, n.LastUsed(ctx, year)+1)
}

// Next advances the year's counter by one, persists it and returns the
// formatted number. It is the only automatic way the counter moves.
func (n *Numbering) Next(ctx context.Context, year int) string {
	seq := ClampSequence(n.LastUsed(ctx, year) + 1)
	n.store(ctx, year, seq)

	n.log.Debug().
		Int("year", year).
		Int("sequence", seq).
		Msg("Advanced invoice counter")

	return FormatInvoiceNo(year, seq)
}

// ManualSet records a user chosen sequence as the year's last used value.
// Lower values than the current counter are accepted so numbers can be
// reissued or backfilled.
func (n *Numbering) ManualSet(ctx context.Context, year, sequence int) string {
	seq := ClampSequence(sequence)
	n.store(ctx, year, seq)

	n.log.Info().
		Int("year", year).
		Int("requested", sequence).
		Int("sequence", seq).
		Msg("Invoice counter set manually")

	return FormatInvoiceNo(year, seq)
}

// StartNewInvoice first records the open invoice's own sequence for its year,
// so a manual edit on it is not lost, then hands out the next number for
// today's year. It returns the new number and today's date.
func (n *Numbering) StartNewInvoice(ctx context.Context, current *models.Invoice) (number, date string) {
	if current != nil {
		year := n.Year(current.Date)
		n.store(ctx, year, ClampSequence(ExtractSequence(current.InvoiceNumber)))
	}

	today := n.now()
	return n.Next(ctx, today.Year()), today.Format(DateLayout)
}

// ChangeDate sets the invoice date and re-formats the existing sequence under
// the new date's year. No counter is read or advanced.
func (n *Numbering) ChangeDate(inv *models.Invoice, dateISO string) {
	inv.Date = dateISO
	inv.InvoiceNumber = FormatInvoiceNo(n.Year(dateISO), ExtractSequence(inv.InvoiceNumber))
}

func (n *Numbering) store(ctx context.Context, year, sequence int) {
	if err := n.counters.SetLastUsed(ctx, year, sequence); err != nil {
		n.log.Warn().
			Err(err).
			Int("year", year).
			Int("sequence", sequence).
			Msg("Failed to persist invoice counter")
	}
}
