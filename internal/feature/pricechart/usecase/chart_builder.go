package usecase

import (
	"fmt"

	"stock_chart/internal/feature/pricechart/domain"
	"stock_chart/internal/feature/pricechart/domain/entity"
)

// Palette は系列に割り当てる固定色（Spectral6）です。
var Palette = []string{"#3288bd", "#99d594", "#e6f598", "#fee08b", "#fc8d59", "#d53e4f"}

const (
	// TitlePrefix はチャートタイトルの固定部分です。データセットIDが後ろに続きます。
	TitlePrefix = "Quandl data for FSE dataset ID="
	// XAxisLabel は横軸ラベルです。
	XAxisLabel = "Date"
	// YAxisLabel は縦軸ラベルです。通貨単位が設定されている場合は括弧付きで付加されます。
	YAxisLabel = "Stock Prices"

	defaultLineWidth = 2.0
)

// DefaultLayout はレンダリング層に渡す表示用の定数です。
var DefaultLayout = entity.Layout{
	Width:          500,
	Height:         350,
	TitleFontSize:  15,
	LabelFontSize:  11,
	LegendFontSize: 8,
	LegendLocation: "top_left",
	ShowGrid:       false,
}

type buildOptions struct {
	valueUnit string
}

// BuildOption は Build の表示オプションを設定します。
type BuildOption func(*buildOptions)

// WithValueUnit は縦軸ラベルに通貨単位を付加します（例: "EUR"）。空文字は無視されます。
func WithValueUnit(unit string) BuildOption {
	return func(o *buildOptions) { o.valueUnit = unit }
}

// ColorFor は index 番目の系列の色を返します。
// パレットを超える系列は先頭から循環して色を再利用します。
func ColorFor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// Build は Table の各値列を 1 本の系列に変換し、ChartDescription を生成します。
// 欠損値は補間も除外もせず、無効な値の点としてそのまま残します。
// 行に存在しない列が含まれる場合は ErrUnknownColumn を包んだ ValidationError を返します。
func Build(t *entity.Table, datasetID string, opts ...BuildOption) (*entity.ChartDescription, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	yLabel := YAxisLabel
	if o.valueUnit != "" {
		yLabel = fmt.Sprintf("%s (%s)", YAxisLabel, o.valueUnit)
	}

	cd := &entity.ChartDescription{
		Title:  TitlePrefix + datasetID,
		XLabel: XAxisLabel,
		YLabel: yLabel,
		Layout: DefaultLayout,
		Series: []entity.Series{},
	}
	if t == nil {
		return cd, nil
	}

	for i, col := range t.ValueColumns() {
		points := make([]entity.Point, 0, len(t.Rows))
		for _, row := range t.Rows {
			v, ok := row.Value(col)
			if !ok {
				return nil, unknownColumnError(col)
			}
			points = append(points, entity.Point{Time: row.Time, Value: v})
		}
		cd.Series = append(cd.Series, entity.Series{
			Column: col,
			Style: entity.SeriesStyle{
				Color:     ColorFor(i),
				Label:     col,
				LineWidth: defaultLineWidth,
			},
			Points: points,
		})
	}
	return cd, nil
}

func unknownColumnError(col string) error {
	return &domain.ValidationError{
		Field:   "column",
		Values:  []string{col},
		Message: "not present in dataset",
		Err:     domain.ErrUnknownColumn,
	}
}
