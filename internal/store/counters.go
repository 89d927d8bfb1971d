package store

import (
	"context"
	"errors"

	"invoicer/pkg/models"
)

// Counters stores the per-year invoice sequence records in a KV. It satisfies
// the numbering authority's counter interface.
type Counters struct {
	kv KV
}

func NewCounters(kv KV) *Counters {
	return &Counters{kv: kv}
}

type counterRecord struct {
	LastUsedSequence int `json:"lastUsedSequence"`
}

// LastUsed returns the stored sequence for year, 0 when there is no record.
func (c *Counters) LastUsed(ctx context.Context, year int) (int, error) {
	var rec counterRecord
	err := GetJSON(ctx, c.kv, CounterKey(year), &rec)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.LastUsedSequence, nil
}

// SetLastUsed overwrites the stored sequence for year.
func (c *Counters) SetLastUsed(ctx context.Context, year, sequence int) error {
	return PutJSON(ctx, c.kv, CounterKey(year), counterRecord{LastUsedSequence: sequence})
}

// Get returns the counter record for year.
func (c *Counters) Get(ctx context.Context, year int) (models.YearCounter, error) {
	seq, err := c.LastUsed(ctx, year)
	if err != nil {
		return models.YearCounter{}, err
	}
	return models.YearCounter{Year: year, LastUsedSequence: seq}, nil
}
