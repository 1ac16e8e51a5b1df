// internal/service/analytics/view.go

package analytics

import (
	"vizdash/internal/domain/record"
)

// ViewOptions controls how a dashboard view is assembled
type ViewOptions struct {
	Page      int
	PageSize  int
	TopTopics int
	ScatterX  record.Metric
	ScatterY  record.Metric
	Gazetteer *Gazetteer
}

// DefaultViewOptions returns the options the dashboard starts with
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		PageSize:  10,
		TopTopics: 8,
		ScatterX:  record.MetricRelevance,
		ScatterY:  record.MetricIntensity,
		Gazetteer: DefaultGazetteer(),
	}
}

// View is every chart input for one filter over one dataset
type View struct {
	Total     int                  `json:"total"`
	Matched   int                  `json:"matched"`
	Filter    record.AppliedFilter `json:"filter"`
	Countries BarPage              `json:"countries"`
	Topics    []Share              `json:"topics"`
	Trend     []record.MeanGroup   `json:"trend"`
	ScatterX  record.Metric        `json:"scatter_x"`
	ScatterY  record.Metric        `json:"scatter_y"`
	Scatter   []Point              `json:"scatter"`
	Markers   []Marker             `json:"markers"`
}

// BuildView filters the dataset and derives every chart input from the result
func BuildView(records []record.Record, filter record.AppliedFilter, opts ViewOptions) View {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.TopTopics <= 0 {
		opts.TopTopics = 8
	}
	if opts.ScatterX == "" {
		opts.ScatterX = record.MetricRelevance
	}
	if opts.ScatterY == "" {
		opts.ScatterY = record.MetricIntensity
	}

	matched := ApplyFilter(records, filter)
	return View{
		Total:     len(records),
		Matched:   len(matched),
		Filter:    filter,
		Countries: CountryBars(matched, opts.Page, opts.PageSize),
		Topics:    TopicShares(matched, opts.TopTopics),
		Trend:     YearTrend(matched, record.Metrics...),
		ScatterX:  opts.ScatterX,
		ScatterY:  opts.ScatterY,
		Scatter:   ScatterPoints(matched, opts.ScatterX, opts.ScatterY),
		Markers:   CountryMarkers(matched, opts.Gazetteer),
	}
}
