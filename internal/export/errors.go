package export

import (
	"errors"
	"fmt"
)

// Common export errors
var (
	// ErrExportFailed is returned when rendering or writing the file fails.
	// The draft is left untouched and the export can simply be retried.
	ErrExportFailed = errors.New("export failed")

	// ErrUnsupportedFormat is returned for a format other than pdf or png.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ExportError wraps a pipeline failure with the step and format it happened in.
type ExportError struct {
	// Op is the pipeline step that failed (e.g., "render", "rename").
	Op string

	// Format is the requested output format.
	Format Format

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export: %s %s failed: %v", e.Format, e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is reports every ExportError as ErrExportFailed.
func (e *ExportError) Is(target error) bool {
	return target == ErrExportFailed
}

func newExportError(op string, format Format, err error) error {
	return &ExportError{Op: op, Format: format, Err: err}
}
