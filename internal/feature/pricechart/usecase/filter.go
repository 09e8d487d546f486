package usecase

import (
	"github.com/guregu/null/v6"

	"stock_chart/internal/feature/pricechart/domain/entity"
)

// DefaultColumns は列指定がない場合に使用する標準の価格列です。
// 「全列」ではなくこの固定セットが既定値です。
var DefaultColumns = []string{"Open", "High", "Low", "Close"}

// Select は日付範囲と列指定で Table を絞り込み、新しい Table を返します。入力は変更しません。
//
// 日付: 未指定の境界はそれぞれ独立に Table の最小・最大日時で補完し、両端を含めて比較します。
// 開始 > 終了 の場合はエラーではなく空の結果になります。
//
// 列: 出力は常に時間列が先頭に 1 回だけ現れ、続いて指定順の列が並びます。
// 存在しない列名はここでは検証しません（下流の参照で失敗します）。
func Select(t *entity.Table, r entity.DateRange, columns []string) *entity.Table {
	out := &entity.Table{}
	if t == nil {
		return out
	}

	timeCol := t.TimeColumn()
	selected := selectColumns(timeCol, columns)
	out.Columns = append([]string{timeCol}, selected...)

	first, last, ok := t.Bounds()
	if !ok {
		out.Rows = []entity.Row{}
		return out
	}
	start, end := first, last
	if r.Start.Valid {
		start = r.Start.Time
	}
	if r.End.Valid {
		end = r.End.Time
	}

	out.Rows = make([]entity.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Time.Before(start) || row.Time.After(end) {
			continue
		}
		values := make(map[string]null.Float, len(selected))
		for _, c := range selected {
			if v, ok := row.Values[c]; ok {
				values[c] = v
			}
		}
		out.Rows = append(out.Rows, entity.Row{Time: row.Time, Values: values})
	}
	return out
}

// selectColumns は要求された列を重複なしで順序を保って返します。
// 時間列の指定は暗黙に含まれるため取り除きます。
func selectColumns(timeCol string, columns []string) []string {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	seen := make(map[string]struct{}, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "" || c == timeCol {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return append(out, DefaultColumns...)
	}
	return out
}
