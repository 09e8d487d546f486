// Package entity defines the domain models for the pricechart feature.
package entity

import (
	"time"

	"github.com/guregu/null/v6"
)

// RawPayload is the undecoded response body returned by the data provider.
type RawPayload []byte

// Row is one observation of a daily time series.
// Values holds every non-temporal column; a null.Float with Valid=false is
// the no-value marker for an unreported measurement.
type Row struct {
	Time   time.Time
	Values map[string]null.Float
}

// Value returns the value recorded for column and whether the column exists in this row.
func (r Row) Value(column string) (null.Float, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Table is the canonical tabular form of a dataset.
// Columns[0] is always the temporal key; Rows are sorted ascending by Time.
type Table struct {
	Columns []string
	Rows    []Row
}

// TimeColumn returns the name of the temporal key column.
func (t *Table) TimeColumn() string {
	if t == nil || len(t.Columns) == 0 {
		return ""
	}
	return t.Columns[0]
}

// ValueColumns returns the non-temporal columns in declared order.
func (t *Table) ValueColumns() []string {
	if t == nil || len(t.Columns) < 2 {
		return nil
	}
	return t.Columns[1:]
}

// Bounds returns the earliest and latest timestamps in the table.
// ok is false for an empty table.
func (t *Table) Bounds() (first, last time.Time, ok bool) {
	if t == nil || len(t.Rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.Rows[0].Time, t.Rows[len(t.Rows)-1].Time, true
}

// DateRange bounds a Table by its temporal key. An invalid (unset) bound
// falls back to the corresponding extreme of the table being filtered.
type DateRange struct {
	Start null.Time
	End   null.Time
}
