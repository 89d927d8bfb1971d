// Package export turns an invoice into a printable file. BuildSheet lays the
// invoice out once; PDFRenderer and PNGRenderer place that layout on paper.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Format is an export file format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat accepts pdf or png in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Renderer places a Sheet on paper and writes the encoded file to w.
type Renderer interface {
	Render(s Sheet, w io.Writer) error
}

// RendererFor returns the renderer used for format.
func RendererFor(format Format) (Renderer, error) {
	switch format {
	case FormatPDF:
		return PDFRenderer{}, nil
	case FormatPNG:
		return PNGRenderer{Scale: 2}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SnapshotStore holds the point-in-time copy of the invoice being exported.
type SnapshotStore interface {
	WriteExportSnapshot(ctx context.Context, inv *models.Invoice) error
	TakeExportSnapshot(ctx context.Context) (*models.Invoice, error)
}

// Exporter runs the export pipeline: validate, snapshot, lay out, render.
type Exporter struct {
	snapshots SnapshotStore
	renderer  func(Format) (Renderer, error)
}

func NewExporter(snapshots SnapshotStore) *Exporter {
	return &Exporter{snapshots: snapshots, renderer: RendererFor}
}

// Export writes inv as format into dir and returns the file path. An invoice
// that fails validation returns invoice.ValidationErrors and nothing is
// written. Every later failure matches ErrExportFailed.
func (e *Exporter) Export(ctx context.Context, inv *models.Invoice, format Format, dir string) (string, error) {
	log := logger.WithInvoice("export", inv.InvoiceNumber)

	if err := invoice.CheckExportable(inv); err != nil {
		log.Info().Err(err).Msg("Export blocked by validation")
		return "", err
	}
	renderer, err := e.renderer(format)
	if err != nil {
		return "", err
	}

	if err := e.snapshots.WriteExportSnapshot(ctx, inv); err != nil {
		return "", newExportError("snapshot", format, err)
	}
	snap, err := e.snapshots.TakeExportSnapshot(ctx)
	if err != nil {
		return "", newExportError("snapshot", format, err)
	}

	sheet := BuildSheet(snap)
	path := filepath.Join(dir, Filename(snap, string(format)))

	log.Debug().
		Str("format", string(format)).
		Str("path", path).
		Int("items", len(sheet.Items)).
		Msg("Rendering invoice")

	if err := writeAtomic(dir, path, func(w io.Writer) error {
		return renderer.Render(sheet, w)
	}); err != nil {
		log.Error().Err(err).Str("format", string(format)).Msg("Export failed")
		return "", newExportError("render", format, err)
	}

	log.Info().
		Str("format", string(format)).
		Str("path", path).
		Msg("Invoice exported")
	return path, nil
}

// writeAtomic renders into a temp file next to path and renames it into
// place, so a failed render never leaves a partial file behind.
func writeAtomic(dir, path string, render func(io.Writer) error) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".invoicer-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := render(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
