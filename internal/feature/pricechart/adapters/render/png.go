// Package render はChartDescriptionを画像に描画するレンダリング層を提供します。
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"stock_chart/internal/feature/pricechart/domain/entity"
	"stock_chart/internal/feature/pricechart/usecase"
)

// ErrNothingToPlot は描画可能な点が 2 日分に満たない場合に返されます。
var ErrNothingToPlot = errors.New("chart needs values on at least two dates")

// PNGRenderer はgo-chartを使ってChartDescriptionをPNGとして書き出します。
type PNGRenderer struct{}

// NewPNGRenderer は新しいPNGRendererを生成します。
func NewPNGRenderer() PNGRenderer { return PNGRenderer{} }

// Render は cd を PNG として w に書き込みます。
// 欠損値の位置で系列を分割し、欠損をまたいで線を結びません。
func (PNGRenderer) Render(w io.Writer, cd *entity.ChartDescription) error {
	if cd == nil {
		return ErrNothingToPlot
	}

	var (
		series  []chart.Series
		legend  []chart.Series
		minY    float64
		maxY    float64
		minX    time.Time
		maxX    time.Time
		hasData bool
	)
	for idx, s := range cd.Series {
		style := seriesStyle(s.Style, idx)
		for i, seg := range segments(s.Points) {
			ts := chart.TimeSeries{Style: style}
			if len(seg) == 1 {
				// 単独の点は線にならないため点として描く
				ts.Style.DotWidth = style.StrokeWidth + 1
				ts.Style.DotColor = style.StrokeColor
			}
			for _, p := range seg {
				ts.XValues = append(ts.XValues, p.Time)
				ts.YValues = append(ts.YValues, p.Value.Float64)

				if !hasData {
					minY, maxY, minX, maxX = p.Value.Float64, p.Value.Float64, p.Time, p.Time
					hasData = true
				}
				minY = min(minY, p.Value.Float64)
				maxY = max(maxY, p.Value.Float64)
				if p.Time.Before(minX) {
					minX = p.Time
				}
				if p.Time.After(maxX) {
					maxX = p.Time
				}
			}
			if i == 0 {
				ts.Name = s.Style.Label
				legend = append(legend, ts)
			}
			series = append(series, ts)
		}
	}
	if !hasData || !maxX.After(minX) {
		return ErrNothingToPlot
	}

	yAxis := chart.YAxis{
		Name:      cd.YLabel,
		NameStyle: chart.Style{FontSize: cd.Layout.LabelFontSize},
	}
	if minY == maxY {
		yAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}
	xAxis := chart.XAxis{
		Name:           cd.XLabel,
		NameStyle:      chart.Style{FontSize: cd.Layout.LabelFontSize},
		ValueFormatter: chart.TimeDateValueFormatter,
	}
	if cd.Layout.ShowGrid {
		grid := chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1}
		xAxis.GridMajorStyle = grid
		yAxis.GridMajorStyle = grid
	}

	ch := chart.Chart{
		Title:      cd.Title,
		TitleStyle: chart.Style{FontSize: cd.Layout.TitleFontSize},
		Width:      cd.Layout.Width,
		Height:     cd.Layout.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	// 凡例は各列の最初の区間だけを元に作る（分割した区間が重複して並ばないように）
	legendSource := chart.Chart{Series: legend}
	ch.Elements = []chart.Renderable{chart.Legend(&legendSource, chart.Style{FontSize: cd.Layout.LegendFontSize})}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// segments は欠損値で点列を区切り、値のある連続区間のみを返します。
func segments(points []entity.Point) [][]entity.Point {
	var (
		out [][]entity.Point
		cur []entity.Point
	)
	for _, p := range points {
		if !p.Value.Valid {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// seriesStyle は系列の線スタイルを返します。
// 色が "#rgb" / "#rrggbb" 形式でない場合は index 番目のパレット色を使います。
func seriesStyle(s entity.SeriesStyle, index int) chart.Style {
	width := s.LineWidth
	if width <= 0 {
		width = 1
	}
	hex := strings.TrimPrefix(s.Color, "#")
	if !isHexColor(hex) {
		hex = strings.TrimPrefix(usecase.ColorFor(index), "#")
	}
	return chart.Style{
		StrokeColor: drawing.ColorFromHex(hex),
		StrokeWidth: width,
	}
}

// isHexColor は s が 3 桁または 6 桁の16進数かどうかを返します。
func isHexColor(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
