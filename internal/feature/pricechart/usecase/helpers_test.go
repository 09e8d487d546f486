package usecase_test

import (
	"time"

	"github.com/guregu/null/v6"

	"stock_chart/internal/feature/pricechart/domain/entity"
)

// day は 2018-05-01 から n-1 日後の UTC 日付を返します。
func day(n int) time.Time {
	return time.Date(2018, 5, n, 0, 0, 0, 0, time.UTC)
}

// ohlcTable は 2018-05-01 から days 日分の Date/Open/High/Low/Close/Volume テーブルを生成します。
func ohlcTable(days int) *entity.Table {
	t := &entity.Table{Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume"}}
	for i := 1; i <= days; i++ {
		base := 50 + float64(i)
		t.Rows = append(t.Rows, entity.Row{
			Time: day(i),
			Values: map[string]null.Float{
				"Open":   null.FloatFrom(base),
				"High":   null.FloatFrom(base + 2),
				"Low":    null.FloatFrom(base - 1),
				"Close":  null.FloatFrom(base + 1),
				"Volume": null.FloatFrom(1000 * float64(i)),
			},
		})
	}
	return t
}

func dateRange(start, end *time.Time) entity.DateRange {
	var r entity.DateRange
	if start != nil {
		r.Start = null.TimeFrom(*start)
	}
	if end != nil {
		r.End = null.TimeFrom(*end)
	}
	return r
}

func ptr[T any](v T) *T { return &v }
