package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizdash/internal/domain/record"
)

func TestApplyFilter_EmptyFilterKeepsEverything(t *testing.T) {
	records := sampleRecords()
	got := ApplyFilter(records, record.AppliedFilter{})
	assert.Equal(t, records, got)
}

func TestApplyFilter_EmptyInput(t *testing.T) {
	got := ApplyFilter(nil, record.AppliedFilter{Topic: []string{"oil"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter record.AppliedFilter
		want   []string
	}{
		{
			name:   "single value",
			filter: record.AppliedFilter{Topic: []string{"oil"}},
			want:   []string{"1", "3", "6"},
		},
		{
			name:   "or within a field",
			filter: record.AppliedFilter{Country: []string{"Nigeria", "United States of America"}},
			want:   []string{"2", "5"},
		},
		{
			name:   "and across fields",
			filter: record.AppliedFilter{Topic: []string{"oil"}, Sector: []string{"Energy"}},
			want:   []string{"1", "6"},
		},
		{
			name:   "missing value never matches",
			filter: record.AppliedFilter{Country: []string{"India", "Nigeria", "United States of America"}},
			want:   []string{"1", "2", "3", "5", "6"},
		},
		{
			name:   "year is an upper bound",
			filter: record.AppliedFilter{EndYear: []int{2020}},
			want:   []string{"1", "4", "5"},
		},
		{
			name:   "year combined with text",
			filter: record.AppliedFilter{EndYear: []int{2027}, Topic: []string{"gas"}},
			want:   []string{"2", "5"},
		},
		{
			name:   "only the first year counts",
			filter: record.AppliedFilter{EndYear: []int{2018, 2050}},
			want:   []string{"4"},
		},
		{
			name:   "no match",
			filter: record.AppliedFilter{City: []string{"Paris"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(sampleRecords(), tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyFilter_YearCutoffExcludesMissingYears(t *testing.T) {
	got := ApplyFilter(sampleRecords(), record.AppliedFilter{EndYear: []int{3000}})
	for _, r := range got {
		_, ok := r.Year()
		assert.True(t, ok, "record %s has no end_year", r.ID)
	}
	assert.Len(t, got, 5)
}

func TestApplyFilter_Idempotent(t *testing.T) {
	records := sampleRecords()
	filter := record.AppliedFilter{Topic: []string{"oil", "gas"}, EndYear: []int{2027}}

	first := ApplyFilter(records, filter)
	second := ApplyFilter(records, filter)
	assert.Equal(t, first, second)
	assert.Equal(t, sampleRecords(), records)
}

func TestApplyFilter_Scenario(t *testing.T) {
	records := []record.Record{
		{Country: "A", EndYear: year(2020), Intensity: num(1)},
		{Country: "A", EndYear: year(2021), Intensity: num(3)},
		{Country: "B", EndYear: year(2019), Intensity: num(5)},
	}

	got := ApplyFilter(records, record.AppliedFilter{EndYear: []int{2020}, Country: []string{}})
	// Cutoff semantics keep 2019 as well; only the 2021 record is dropped.
	require.Len(t, got, 2)
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, records[2], got[1])

	got = ApplyFilter(records, record.AppliedFilter{EndYear: []int{2020}, Country: []string{"A"}})
	require.Len(t, got, 1)
	assert.Equal(t, records[0], got[0])

	means := MeanByKey(records, record.FieldCountry, record.MetricIntensity)
	require.Len(t, means, 2)
	assert.Equal(t, "A", means[0].Key)
	assert.InDelta(t, 2.0, means[0].Mean(record.MetricIntensity), 1e-9)
	assert.Equal(t, "B", means[1].Key)
	assert.InDelta(t, 5.0, means[1].Mean(record.MetricIntensity), 1e-9)
}
