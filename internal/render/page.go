// internal/render/page.go

package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotisserie/eris"

	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
)

const (
	PageTitle   = "Visualization Dashboard"
	chartWidth  = "1100px"
	chartHeight = "480px"
	textColor   = "#333"
)

// Page assembles one chart per dashboard panel for the view
func Page(view analytics.View) *components.Page {
	page := components.NewPage()
	page.PageTitle = PageTitle
	page.AddCharts(
		countryChart(view),
		topicChart(view),
		trendChart(view),
		scatterChart(view),
	)
	return page
}

// Write renders the view as a standalone HTML page
func Write(w io.Writer, view analytics.View) error {
	if err := Page(view).Render(w); err != nil {
		return eris.Wrap(err, "render: chart page")
	}
	return nil
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  chartWidth,
		Height: chartHeight,
	})
}

func title(text, sub string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title:      text,
		Subtitle:   sub,
		TitleStyle: &opts.TextStyle{Color: textColor},
	})
}

func countryChart(view analytics.View) *charts.Bar {
	bars := view.Countries
	keys := make([]string, 0, len(bars.Groups))
	data := make([]opts.BarData, 0, len(bars.Groups))
	for _, g := range bars.Groups {
		keys = append(keys, g.Key)
		data = append(data, opts.BarData{Value: g.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		title("Events by country", fmt.Sprintf("page %d of %d, %d countries", bars.Page+1, max(bars.Pages, 1), bars.Keys)),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Country",
			AxisLabel: &opts.AxisLabel{
				Rotate: 30,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Events",
		}),
	)

	bar.SetXAxis(keys).AddSeries("Events", data)
	return bar
}

func topicChart(view analytics.View) *charts.Pie {
	data := make([]opts.PieData, 0, len(view.Topics))
	for _, s := range view.Topics {
		data = append(data, opts.PieData{Name: s.Key, Value: s.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		title("Topics", fmt.Sprintf("%d of %d records", view.Matched, view.Total)),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Right:  "10",
			Orient: "vertical",
			Type:   "scroll",
		}),
	)

	pie.AddSeries("Topics", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{"30%", "70%"},
				Center: []string{"40%", "50%"},
			}),
		)
	return pie
}

func trendChart(view analytics.View) *charts.Line {
	years := make([]string, 0, len(view.Trend))
	for _, g := range view.Trend {
		years = append(years, g.Key)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		title("Metrics by end year", ""),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "End year",
		}),
	)

	line.SetXAxis(years)
	for _, m := range record.Metrics {
		line.AddSeries(string(m), trendSeries(view.Trend, m))
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	return line
}

// Years without a value for the metric leave a gap in the line
func trendSeries(groups []record.MeanGroup, m record.Metric) []opts.LineData {
	data := make([]opts.LineData, len(groups))
	for i, g := range groups {
		mean := g.Mean(m)
		if math.IsNaN(mean) {
			data[i] = opts.LineData{Value: nil}
			continue
		}
		data[i] = opts.LineData{Value: math.Round(mean*100) / 100}
	}
	return data
}

func scatterChart(view analytics.View) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(view.Scatter))
	for _, p := range view.Scatter {
		data = append(data, opts.ScatterData{
			Name:  p.Country,
			Value: []float64{p.X, p.Y},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		initOpts(),
		title(fmt.Sprintf("%s vs %s", view.ScatterY, view.ScatterX), fmt.Sprintf("%d points", len(view.Scatter))),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: string(view.ScatterX),
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: string(view.ScatterY),
			Type: "value",
		}),
	)

	scatter.AddSeries("Records", data)
	return scatter
}
