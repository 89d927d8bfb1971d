package workspace

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicer/internal/invoice"
	"invoicer/internal/store"
	"invoicer/pkg/models"
)

var business = models.BusinessProfile{Name: "Lanka Furniture", Phone: "077 123 4567"}

func clock(date string) func() time.Time {
	t, _ := time.Parse(invoice.DateLayout, date)
	return func() time.Time { return t }
}

// brokenKV fails every operation.
type brokenKV struct{}

var errBroken = errors.New("storage unavailable")

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenKV) Put(context.Context, string, []byte) error { return errBroken }
func (brokenKV) Delete(context.Context, string) error { return errBroken }

func TestLoadStartsFreshDraft(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	_ = store.PutJSON(ctx, kv, store.ProfileKey, models.Profile{
		ShowBankDetails: true,
		BankDetails:     models.BankDetails{Name: "A. Perera"},
	})
	_ = store.NewCounters(kv).SetLastUsed(ctx, 2026, 9)

	inv := New(kv, business, clock("2026-02-14")).Load(ctx)

	if inv.InvoiceNumber != "INV-2026-0010" || inv.Date != "2026-02-14" {
		t.Errorf("number/date = %q %q", inv.InvoiceNumber, inv.Date)
	}
	if !inv.ShowBankDetails || inv.BankDetails.Name != "A. Perera" {
		t.Errorf("profile not applied: %+v", inv)
	}
	if inv.Business != business {
		t.Errorf("business = %+v", inv.Business)
	}
}

func TestSaveAndRestoreDraft(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	ws := New(kv, business, clock("2026-02-14"))

	inv := ws.Load(ctx)
	inv.CustomerName = "Nimal"
	inv.Items[0].Description = "Sofa"
	invoice.AddItem(inv)
	ws.Save(ctx, inv)

	restored := New(kv, models.BusinessProfile{Name: "Renamed", Phone: "1"}, clock("2026-02-20")).Load(ctx)
	if restored.CustomerName != "Nimal" || len(restored.Items) != 2 || restored.Items[0].Description != "Sofa" {
		t.Errorf("restored = %+v", restored)
	}
	if restored.InvoiceNumber != inv.InvoiceNumber || restored.Date != "2026-02-14" {
		t.Errorf("restored number/date = %q %q", restored.InvoiceNumber, restored.Date)
	}
	if restored.Business.Name != "Renamed" {
		t.Errorf("business should follow configuration, got %+v", restored.Business)
	}
}

func TestRestoredDraftIsNormalized(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	_ = kv.Put(ctx, store.DraftKey, []byte(`{"date":"2026-01-01","invoiceNumber":"INV-2026-0003","items":[]}`))

	inv := New(kv, business, clock("2026-02-14")).Load(ctx)
	if len(inv.Items) != 1 || inv.Items[0].ID == "" {
		t.Errorf("items = %+v", inv.Items)
	}
}

func TestCorruptDraftIsCacheMiss(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	_ = kv.Put(ctx, store.DraftKey, []byte("{"))

	inv := New(kv, business, clock("2026-02-14")).Load(ctx)
	if inv.InvoiceNumber != "INV-2026-0001" {
		t.Errorf("number = %q", inv.InvoiceNumber)
	}
}

func TestStartNew(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	ws := New(kv, business, clock("2026-02-14"))

	inv := ws.Load(ctx) // INV-2026-0001, not yet consumed
	inv.CustomerName = "Nimal"
	inv.ShowBankDetails = true
	ws.StartNew(ctx, inv)

	if inv.InvoiceNumber != "INV-2026-0002" {
		t.Errorf("number = %q, want INV-2026-0002", inv.InvoiceNumber)
	}
	if inv.CustomerName != "" || !inv.ShowBankDetails {
		t.Errorf("reset = %+v", inv)
	}

	c, err := ws.Counter(ctx, 2026)
	if err != nil || c.LastUsedSequence != 2 {
		t.Errorf("counter = %+v, %v", c, err)
	}

	restored := New(kv, business, clock("2026-02-14")).Load(ctx)
	if restored.InvoiceNumber != "INV-2026-0002" {
		t.Errorf("new draft not saved: %q", restored.InvoiceNumber)
	}
}

func TestExportSnapshotIsConsumedOnce(t *testing.T) {
	ctx := context.Background()
	ws := New(store.NewMemoryStore(), business, clock("2026-02-14"))
	inv := ws.Load(ctx)
	inv.CustomerName = "Nimal"

	if err := ws.WriteExportSnapshot(ctx, inv); err != nil {
		t.Fatal(err)
	}
	inv.CustomerName = "changed after export"

	snap, err := ws.TakeExportSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.CustomerName != "Nimal" {
		t.Errorf("snapshot customer = %q", snap.CustomerName)
	}
	if _, err := ws.TakeExportSnapshot(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("second take = %v, want ErrNoSnapshot", err)
	}
}

func TestBrokenStorageDegradesToMemory(t *testing.T) {
	ctx := context.Background()
	ws := New(brokenKV{}, business, clock("2026-02-14"))

	inv := ws.Load(ctx)
	if inv.InvoiceNumber != "INV-2026-0001" || len(inv.Items) != 1 {
		t.Fatalf("Load with broken storage = %+v", inv)
	}
	ws.Save(ctx, inv)
	ws.StartNew(ctx, inv)
	if inv.InvoiceNumber != "INV-2026-0001" {
		t.Errorf("number after StartNew = %q", inv.InvoiceNumber)
	}
	if err := ws.WriteExportSnapshot(ctx, inv); !errors.Is(err, errBroken) {
		t.Errorf("WriteExportSnapshot = %v, want wrapped storage error", err)
	}
}
