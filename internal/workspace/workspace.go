// Package workspace keeps the editor's session state on the device: the
// continuously saved draft, the device profile and the one-shot export
// snapshot. The in-memory invoice is the source of truth; storage failures
// are logged and otherwise ignored.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/store"
	"invoicer/pkg/models"
)

// ErrNoSnapshot is returned when no export snapshot is waiting to be rendered.
var ErrNoSnapshot = errors.New("no export snapshot")

type Workspace struct {
	kv        store.KV
	counters  *store.Counters
	numbering *invoice.Numbering
	business  models.BusinessProfile
	log       zerolog.Logger
}

// New creates a workspace over kv. A nil now uses the wall clock.
func New(kv store.KV, business models.BusinessProfile, now func() time.Time) *Workspace {
	counters := store.NewCounters(kv)
	return &Workspace{
		kv:        kv,
		counters:  counters,
		numbering: invoice.NewNumbering(counters, now),
		business:  business,
		log:       logger.WithComponent("workspace"),
	}
}

// Numbering returns the numbering authority backed by this workspace's store.
func (w *Workspace) Numbering() *invoice.Numbering {
	return w.numbering
}

// Counter returns the stored counter record for year.
func (w *Workspace) Counter(ctx context.Context, year int) (models.YearCounter, error) {
	return w.counters.Get(ctx, year)
}

// Load restores the saved draft, or starts a fresh one from the device
// profile when there is none. The business profile always comes from
// configuration.
func (w *Workspace) Load(ctx context.Context) *models.Invoice {
	var draft models.Invoice
	err := store.GetJSON(ctx, w.kv, store.DraftKey, &draft)
	if err == nil {
		invoice.Normalize(&draft)
		draft.Business = w.business
		w.log.Debug().
			Str("invoice_number", draft.InvoiceNumber).
			Int("items", len(draft.Items)).
			Msg("Restored draft")
		return &draft
	}
	if !errors.Is(err, store.ErrNotFound) {
		w.log.Warn().Err(err).Msg("Failed to read draft, starting a new one")
	}

	inv := invoice.New(ctx, w.numbering, w.business, w.loadProfile(ctx))
	w.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Msg("Started new draft")
	return inv
}

// Save overwrites the draft and the device profile.
func (w *Workspace) Save(ctx context.Context, inv *models.Invoice) {
	if err := store.PutJSON(ctx, w.kv, store.DraftKey, inv); err != nil {
		w.log.Warn().Err(err).Msg("Failed to save draft")
	}
	if err := store.PutJSON(ctx, w.kv, store.ProfileKey, invoice.ProfileOf(inv)); err != nil {
		w.log.Warn().Err(err).Msg("Failed to save profile")
	}
}

// StartNew supersedes inv with the next draft and saves it.
func (w *Workspace) StartNew(ctx context.Context, inv *models.Invoice) {
	previous := inv.InvoiceNumber
	number, date := w.numbering.StartNewInvoice(ctx, inv)
	invoice.Reset(inv, number, date)
	inv.Business = w.business
	w.Save(ctx, inv)

	w.log.Info().
		Str("previous", previous).
		Str("invoice_number", number).
		Msg("Started new invoice")
}

// WriteExportSnapshot stores the point-in-time copy the export pipeline renders.
func (w *Workspace) WriteExportSnapshot(ctx context.Context, inv *models.Invoice) error {
	if err := store.PutJSON(ctx, w.kv, store.ExportKey, inv); err != nil {
		return fmt.Errorf("failed to write export snapshot: %w", err)
	}
	return nil
}

// TakeExportSnapshot returns the pending export snapshot and removes it, so
// each snapshot is rendered at most once.
func (w *Workspace) TakeExportSnapshot(ctx context.Context) (*models.Invoice, error) {
	var snap models.Invoice
	if err := store.GetJSON(ctx, w.kv, store.ExportKey, &snap); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read export snapshot: %w", err)
	}
	if err := w.kv.Delete(ctx, store.ExportKey); err != nil {
		w.log.Warn().Err(err).Msg("Failed to clear export snapshot")
	}
	return &snap, nil
}

func (w *Workspace) loadProfile(ctx context.Context) models.Profile {
	var p models.Profile
	if err := store.GetJSON(ctx, w.kv, store.ProfileKey, &p); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			w.log.Warn().Err(err).Msg("Failed to read profile, using defaults")
		}
		return models.Profile{}
	}
	return p
}
