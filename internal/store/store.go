// Package store persists the records the invoice editor keeps on the device:
// the profile, the draft, the export snapshot and one counter per year.
// Records are opaque JSON values under fixed keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Record keys
const (
	ProfileKey = "invoice_profile_v1"
	DraftKey   = "invoice_draft_v1"
	ExportKey  = "invoice_export_v1"

	counterKeyPrefix = "invoice_counter_v1:"
)

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("record not found")

// KV is the key-value store the editor reads from and writes to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CounterKey returns the key of the counter record for year.
func CounterKey(year int) string {
	return counterKeyPrefix + strconv.Itoa(year)
}

// GetJSON reads the record under key and decodes it into v.
func GetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Put(ctx, key, data)
}
