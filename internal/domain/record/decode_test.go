package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshal_ProductionShape(t *testing.T) {
	raw := `{
		"_id": {"$oid": "65f1c0ffee"},
		"end_year": "",
		"intensity": 6,
		"sector": "Energy",
		"topic": "gas",
		"insight": "Annual Energy Outlook",
		"url": "http://www.eia.gov/outlooks/aeo/",
		"region": "Northern America",
		"start_year": "",
		"impact": "",
		"added": "January, 20 2017 03:51:25",
		"published": "January, 09 2017 00:00:00",
		"country": "United States of America",
		"relevance": 2,
		"pestle": "Industries",
		"source": "EIA",
		"title": "U.S. natural gas consumption is expected to increase during much of the projection period.",
		"likelihood": 3
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "65f1c0ffee", r.ID)
	assert.Nil(t, r.EndYear)
	assert.Nil(t, r.StartYear)
	assert.Nil(t, r.Impact)
	assert.Equal(t, "gas", r.Topic)
	assert.Equal(t, "United States of America", r.Country)
	require.NotNil(t, r.Intensity)
	assert.Equal(t, 6.0, *r.Intensity)

	_, ok := r.Year()
	assert.False(t, ok)
	_, ok = r.Key(FieldCity)
	assert.False(t, ok)
}

func TestRecordUnmarshal_LooseValues(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantYear *int
		wantInt  *float64
	}{
		{"numbers", `{"end_year": 2020, "intensity": 4.5}`, intp(2020), floatp(4.5)},
		{"numeric strings", `{"end_year": "2030", "intensity": " 7 "}`, intp(2030), floatp(7)},
		{"nulls", `{"end_year": null, "intensity": null}`, nil, nil},
		{"garbage", `{"end_year": "soon", "intensity": true}`, nil, nil},
		{"fractional year", `{"end_year": 2020.5}`, nil, nil},
		{"absent", `{}`, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &r))
			assert.Equal(t, tt.wantYear, r.EndYear)
			assert.Equal(t, tt.wantInt, r.Intensity)
		})
	}
}

func TestRecordUnmarshal_StringTolerance(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "topic": null, "city": 7, "region": {"x": 1}, "country": "  India "}`), &r))
	assert.Equal(t, "42", r.ID)
	assert.Equal(t, "", r.Topic)
	assert.Equal(t, "7", r.City)
	assert.Equal(t, "", r.Region)
	assert.Equal(t, "India", r.Country)
}

func TestRecordRoundTrip(t *testing.T) {
	in := Record{ID: "a", EndYear: intp(2025), Topic: "oil", Intensity: floatp(3)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","end_year":2025,"topic":"oil","intensity":3}`, string(data))

	var out Record
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestRecordKey(t *testing.T) {
	r := Record{EndYear: intp(2021), Country: "India"}

	key, ok := r.Key(FieldEndYear)
	assert.True(t, ok)
	assert.Equal(t, "2021", key)

	key, ok = r.Key(FieldCountry)
	assert.True(t, ok)
	assert.Equal(t, "India", key)

	zero := Record{EndYear: intp(0)}
	_, ok = zero.Key(FieldEndYear)
	assert.False(t, ok)
}

func TestAppliedFilter(t *testing.T) {
	var f AppliedFilter
	assert.True(t, f.IsEmpty())

	f.Select(FieldSector, []string{"Energy"})
	assert.False(t, f.IsEmpty())
	assert.Equal(t, []string{"Energy"}, f.Sector)
	assert.Equal(t, []string{"Energy"}, f.Selected(FieldSector))
	assert.Nil(t, f.Selected(FieldEndYear))

	_, ok := f.YearCutoff()
	assert.False(t, ok)
	f.EndYear = []int{2030, 2040}
	y, ok := f.YearCutoff()
	assert.True(t, ok)
	assert.Equal(t, 2030, y)
}

func TestParseFieldAndMetric(t *testing.T) {
	f, ok := ParseField("pestle")
	assert.True(t, ok)
	assert.Equal(t, FieldPestle, f)
	_, ok = ParseField("intensity")
	assert.False(t, ok)

	m, ok := ParseMetric("likelihood")
	assert.True(t, ok)
	assert.Equal(t, MetricLikelihood, m)
	_, ok = ParseMetric("country")
	assert.False(t, ok)
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
