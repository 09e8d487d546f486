package entity

import (
	"time"

	"github.com/guregu/null/v6"
)

// Point is one (timestamp, value) pair of a plotted series.
// An invalid Value is a gap, never zero.
type Point struct {
	Time  time.Time  `json:"time"`
	Value null.Float `json:"value"`
}

// SeriesStyle is the visual assignment for one column.
type SeriesStyle struct {
	Color     string  `json:"color"` // hex, e.g. "#3288bd"
	Label     string  `json:"label"`
	LineWidth float64 `json:"line_width"`
}

// Series is a single line of the chart.
type Series struct {
	Column string      `json:"column"`
	Style  SeriesStyle `json:"style"`
	Points []Point     `json:"points"`
}

// Layout carries presentation constants for the rendering layer.
type Layout struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TitleFontSize  float64 `json:"title_font_size"`
	LabelFontSize  float64 `json:"label_font_size"`
	LegendFontSize float64 `json:"legend_font_size"`
	LegendLocation string  `json:"legend_location"`
	ShowGrid       bool    `json:"show_grid"`
}

// ChartDescription is the renderer-agnostic output of the pipeline.
type ChartDescription struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Layout Layout   `json:"layout"`
	Series []Series `json:"series"`
}

// PlotRequest is the raw input accepted by the pipeline entry point.
// Dates are the untrimmed user text; parsing happens once inside the pipeline.
type PlotRequest struct {
	DatasetID string
	StartDate string
	EndDate   string
	Columns   []string
}
