// internal/service/analytics/charts.go

package analytics

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"vizdash/internal/domain/record"
)

// BarPage is one page of the per-country event counts
type BarPage struct {
	Groups   []record.CountGroup `json:"groups"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Pages    int                 `json:"pages"`
	Keys     int                 `json:"keys"`
}

// CountryBars counts records per country and returns the requested page
func CountryBars(records []record.Record, page, pageSize int) BarPage {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page < 0 {
		page = 0
	}

	groups := CountByKey(records, record.FieldCountry)
	return BarPage{
		Groups:   Page(groups, page*pageSize, pageSize),
		Page:     page,
		PageSize: pageSize,
		Pages:    (len(groups) + pageSize - 1) / pageSize,
		Keys:     len(groups),
	}
}

// Share is a count with its percentage of the keyed total
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TopicShares counts records per topic, keeps the top n and folds the rest
// into an "others" slice. Percentages are rounded to two decimals.
func TopicShares(records []record.Record, n int) []Share {
	groups := CountByKey(records, record.FieldTopic)
	total := TotalCount(groups)

	top := TopN(groups, n, OthersLabel)
	shares := make([]Share, 0, len(top))
	for _, g := range top {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(g.Count)/float64(total)*10000) / 100
		}
		shares = append(shares, Share{Key: g.Key, Count: g.Count, Percent: pct})
	}
	return shares
}

// YearTrend averages metrics per end_year, ordered by year ascending
func YearTrend(records []record.Record, metrics ...record.Metric) []record.MeanGroup {
	groups := MeanByKey(records, record.FieldEndYear, metrics...)
	slices.SortStableFunc(groups, func(a, b record.MeanGroup) int {
		ya, _ := strconv.Atoi(a.Key)
		yb, _ := strconv.Atoi(b.Key)
		return ya - yb
	})
	return groups
}

// Point is one scatter plot sample
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Country string  `json:"country,omitempty"`
	Topic   string  `json:"topic,omitempty"`
}

// ScatterPoints returns one point per record where both metrics are present
// and non-zero. x and y may name the same metric.
func ScatterPoints(records []record.Record, x, y record.Metric) []Point {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		xv, ok := r.Metric(x)
		if !ok || xv == 0 {
			continue
		}
		yv, ok := r.Metric(y)
		if !ok || yv == 0 {
			continue
		}
		points = append(points, Point{X: xv, Y: yv, Country: r.Country, Topic: r.Topic})
	}
	return points
}

// Marker is a per-country map marker carrying the country's metric means
type Marker struct {
	Group    record.MeanGroup
	Location Coordinates
	Known    bool
}

// MarshalJSON flattens the group and its coordinates into one object
func (m Marker) MarshalJSON() ([]byte, error) {
	out := markerProperties(m)
	out["lat"] = m.Location.Lat
	out["lng"] = m.Location.Lng
	return json.Marshal(out)
}

// CountryMarkers averages every metric per country and places each country
// with the gazetteer. Unknown countries are placed at 0,0.
func CountryMarkers(records []record.Record, gz *Gazetteer) []Marker {
	groups := MeanByKey(records, record.FieldCountry, record.Metrics...)
	markers := make([]Marker, 0, len(groups))
	for _, g := range groups {
		loc, ok := gz.Lookup(g.Key)
		markers = append(markers, Marker{Group: g, Location: loc, Known: ok})
	}
	return markers
}

// MarkersGeoJSON encodes markers as a GeoJSON FeatureCollection of points
func MarkersGeoJSON(markers []Marker) ([]byte, error) {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(markers)),
	}
	for _, m := range markers {
		// GeoJSON positions are longitude first
		point := geom.NewPointFlat(geom.XY, []float64{m.Location.Lng, m.Location.Lat})
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         m.Group.Key,
			Geometry:   point,
			Properties: markerProperties(m),
		})
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "analytics: encode markers")
	}
	return data, nil
}

func markerProperties(m Marker) map[string]interface{} {
	props := map[string]interface{}{
		"country": m.Group.Key,
		"count":   m.Group.Count,
		"located": m.Known,
	}
	for metric, v := range m.Group.Means {
		if math.IsNaN(v) {
			props[string(metric)] = nil
			continue
		}
		props[string(metric)] = v
	}
	return props
}
