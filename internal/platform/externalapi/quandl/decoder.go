package quandl

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"
	"github.com/tidwall/gjson"

	"stock_chart/internal/feature/pricechart/domain"
	"stock_chart/internal/feature/pricechart/domain/entity"
	"stock_chart/internal/feature/pricechart/usecase"
)

const (
	columnNamesPath = "dataset.column_names"
	dataPath        = "dataset.data"
)

// nonFiniteTokens are bare number literals some encoders emit although strict JSON
// has no spelling for them. -Infinity must come before Infinity.
var nonFiniteTokens = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// timeLayouts are tried in order for the temporal key.
var timeLayouts = []string{"2006-01-02", "2006-01-02 15:04:05"}

// Decoder turns a Quandl dataset payload into a Table.
// It holds no state and is safe for concurrent use.
type Decoder struct{}

var _ usecase.Decoder = Decoder{}

// NewDecoder returns a Decoder.
func NewDecoder() Decoder { return Decoder{} }

// Decode reads dataset.column_names and dataset.data, parses the first column as
// dates, normalizes null and NaN cells to the no-value marker and sorts rows by date.
// Every failure is a *domain.DecodeError.
func (Decoder) Decode(datasetID string, raw entity.RawPayload) (*entity.Table, error) {
	fail := func(err error, format string, args ...any) error {
		return &domain.DecodeError{DatasetID: datasetID, Message: fmt.Sprintf(format, args...), Err: err}
	}

	raw = replaceNonFinite(raw)
	if !gjson.ValidBytes(raw) {
		return nil, fail(nil, "malformed JSON body")
	}
	names := gjson.GetBytes(raw, columnNamesPath)
	if !names.IsArray() {
		return nil, fail(nil, "missing %s", columnNamesPath)
	}
	data := gjson.GetBytes(raw, dataPath)
	if !data.IsArray() {
		return nil, fail(nil, "missing %s", dataPath)
	}

	columns, err := decodeColumns(names)
	if err != nil {
		return nil, fail(err, "invalid %s", columnNamesPath)
	}

	cells := data.Array()
	rows := make([]entity.Row, 0, len(cells))
	for i, r := range cells {
		if !r.IsArray() {
			return nil, fail(nil, "row %d is not an array", i)
		}
		vals := r.Array()
		if len(vals) != len(columns) {
			return nil, fail(nil, "row %d has %d values, want %d", i, len(vals), len(columns))
		}

		tm, err := parseTime(vals[0])
		if err != nil {
			return nil, fail(err, "row %d: parse %s", i, columns[0])
		}
		values := make(map[string]null.Float, len(columns)-1)
		for j, cell := range vals[1:] {
			v, err := parseValue(cell)
			if err != nil {
				return nil, fail(err, "row %d: parse %s", i, columns[j+1])
			}
			values[columns[j+1]] = v
		}
		rows = append(rows, entity.Row{Time: tm, Values: values})
	}

	// 提供元の並び順は保証されないため、範囲絞り込みの前に昇順へ揃える
	slices.SortStableFunc(rows, func(a, b entity.Row) int { return a.Time.Compare(b.Time) })

	return &entity.Table{Columns: columns, Rows: rows}, nil
}

func decodeColumns(names gjson.Result) ([]string, error) {
	list := names.Array()
	if len(list) == 0 {
		return nil, fmt.Errorf("no columns declared")
	}
	columns := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for i, n := range list {
		if n.Type != gjson.String || n.String() == "" {
			return nil, fmt.Errorf("column %d is not a non-empty string", i)
		}
		if _, dup := seen[n.String()]; dup {
			return nil, fmt.Errorf("duplicate column %q", n.String())
		}
		seen[n.String()] = struct{}{}
		columns = append(columns, n.String())
	}
	return columns, nil
}

func parseTime(cell gjson.Result) (time.Time, error) {
	if cell.Type != gjson.String {
		return time.Time{}, fmt.Errorf("want date string, got %s", cell.Raw)
	}
	var err error
	for _, layout := range timeLayouts {
		var tm time.Time
		if tm, err = time.Parse(layout, cell.Str); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time %q: %w", cell.Str, err)
}

// parseValue returns an invalid null.Float for null, empty, NaN and infinite cells.
func parseValue(cell gjson.Result) (null.Float, error) {
	switch cell.Type {
	case gjson.Null:
		return null.Float{}, nil
	case gjson.Number:
		return finite(cell.Float()), nil
	case gjson.String:
		s := strings.TrimSpace(cell.Str)
		if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
			return null.Float{}, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if errors.Is(err, strconv.ErrRange) {
			return null.Float{}, nil
		}
		if err != nil {
			return null.Float{}, fmt.Errorf("parse number %q: %w", cell.Str, err)
		}
		return finite(f), nil
	default:
		return null.Float{}, fmt.Errorf("want number or null, got %s", cell.Raw)
	}
}

func finite(f float64) null.Float {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return null.Float{}
	}
	return null.FloatFrom(f)
}

// replaceNonFinite rewrites bare NaN and ±Infinity tokens outside string literals to null.
// raw is returned unchanged when it contains none of them.
func replaceNonFinite(raw entity.RawPayload) entity.RawPayload {
	if !bytes.Contains(raw, []byte("NaN")) && !bytes.Contains(raw, []byte("Infinity")) {
		return raw
	}
	out := make(entity.RawPayload, 0, len(raw))
	inString, escaped := false, false
	for i := 0; i < len(raw); {
		c := raw[i]
		if inString {
			out = append(out, c)
			i++
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			i++
			continue
		}
		matched := false
		for _, tok := range nonFiniteTokens {
			if bytes.HasPrefix(raw[i:], tok) {
				out = append(out, "null"...)
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, c)
			i++
		}
	}
	return out
}
