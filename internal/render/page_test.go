package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
)

func year(v int) *int { return &v }

func num(v float64) *float64 { return &v }

func sampleView() analytics.View {
	records := []record.Record{
		{EndYear: year(2020), Country: "India", Topic: "oil", Intensity: num(6), Relevance: num(2)},
		{EndYear: year(2022), Country: "Nigeria", Topic: "gas", Intensity: num(4), Relevance: num(3), Likelihood: num(1)},
		{Country: "India", Topic: "oil", Intensity: num(2)},
	}
	return analytics.BuildView(records, record.AppliedFilter{}, analytics.DefaultViewOptions())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleView()))

	html := buf.String()
	assert.Contains(t, html, "<title>"+PageTitle+"</title>")
	assert.Contains(t, html, "Events by country")
	assert.Contains(t, html, "Metrics by end year")
	assert.Contains(t, html, "Nigeria")
}

func TestWrite_EmptyView(t *testing.T) {
	view := analytics.BuildView(nil, record.AppliedFilter{}, analytics.ViewOptions{})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, view))
	assert.Contains(t, buf.String(), "Topics")
}

func TestTrendSeries_GapsForMissingMetric(t *testing.T) {
	view := sampleView()
	require.Len(t, view.Trend, 2)

	likelihood := trendSeries(view.Trend, record.MetricLikelihood)
	require.Len(t, likelihood, 2)
	assert.Nil(t, likelihood[0].Value, "2020 has no likelihood")
	assert.Equal(t, 1.0, likelihood[1].Value)

	intensity := trendSeries(view.Trend, record.MetricIntensity)
	assert.Equal(t, 6.0, intensity[0].Value)
}
