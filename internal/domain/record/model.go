// internal/domain/record/model.go

package record

import (
	"strconv"
)

// Field identifies a filterable record field
type Field string

const (
	FieldEndYear Field = "end_year"
	FieldTopic   Field = "topic"
	FieldSector  Field = "sector"
	FieldRegion  Field = "region"
	FieldPestle  Field = "pestle"
	FieldSource  Field = "source"
	FieldCountry Field = "country"
	FieldCity    Field = "city"
)

// Metric identifies a numeric record field used for means and scatter axes
type Metric string

const (
	MetricIntensity  Metric = "intensity"
	MetricRelevance  Metric = "relevance"
	MetricLikelihood Metric = "likelihood"
)

// Fields lists every filterable field in panel order
var Fields = []Field{
	FieldEndYear,
	FieldTopic,
	FieldSector,
	FieldRegion,
	FieldPestle,
	FieldSource,
	FieldCountry,
	FieldCity,
}

// TextFields lists the filterable fields holding string values
var TextFields = Fields[1:]

// Metrics lists every numeric metric
var Metrics = []Metric{MetricIntensity, MetricRelevance, MetricLikelihood}

// ParseField returns the field with the given name
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// ParseMetric returns the metric with the given name
func ParseMetric(name string) (Metric, bool) {
	for _, m := range Metrics {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}

// Record is one flat item of the dataset. Every field is optional.
type Record struct {
	ID         string   `json:"id,omitempty"`
	EndYear    *int     `json:"end_year,omitempty"`
	StartYear  *int     `json:"start_year,omitempty"`
	Topic      string   `json:"topic,omitempty"`
	Sector     string   `json:"sector,omitempty"`
	Region     string   `json:"region,omitempty"`
	Pestle     string   `json:"pestle,omitempty"`
	Source     string   `json:"source,omitempty"`
	Country    string   `json:"country,omitempty"`
	City       string   `json:"city,omitempty"`
	Intensity  *float64 `json:"intensity,omitempty"`
	Relevance  *float64 `json:"relevance,omitempty"`
	Likelihood *float64 `json:"likelihood,omitempty"`
	Impact     *float64 `json:"impact,omitempty"`
	Title      string   `json:"title,omitempty"`
	Insight    string   `json:"insight,omitempty"`
	URL        string   `json:"url,omitempty"`
	Added      string   `json:"added,omitempty"`
	Published  string   `json:"published,omitempty"`
}

// Year returns the end year when present and non-zero
func (r Record) Year() (int, bool) {
	if r.EndYear == nil || *r.EndYear == 0 {
		return 0, false
	}
	return *r.EndYear, true
}

// Text returns the string value of a text field, or "" when absent
func (r Record) Text(f Field) string {
	switch f {
	case FieldTopic:
		return r.Topic
	case FieldSector:
		return r.Sector
	case FieldRegion:
		return r.Region
	case FieldPestle:
		return r.Pestle
	case FieldSource:
		return r.Source
	case FieldCountry:
		return r.Country
	case FieldCity:
		return r.City
	}
	return ""
}

// Key returns the grouping key for a field. end_year is rendered in decimal.
func (r Record) Key(f Field) (string, bool) {
	if f == FieldEndYear {
		year, ok := r.Year()
		if !ok {
			return "", false
		}
		return strconv.Itoa(year), true
	}
	v := r.Text(f)
	return v, v != ""
}

// Metric returns a metric value when present
func (r Record) Metric(m Metric) (float64, bool) {
	var v *float64
	switch m {
	case MetricIntensity:
		v = r.Intensity
	case MetricRelevance:
		v = r.Relevance
	case MetricLikelihood:
		v = r.Likelihood
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// FilterCriteria holds the selectable values per field, derived from a dataset
type FilterCriteria struct {
	EndYear []int    `json:"end_year"`
	Topic   []string `json:"topic"`
	Sector  []string `json:"sector"`
	Region  []string `json:"region"`
	Pestle  []string `json:"pestle"`
	Source  []string `json:"source"`
	Country []string `json:"country"`
	City    []string `json:"city"`
}

// Values returns the criteria list for a text field
func (c FilterCriteria) Values(f Field) []string {
	if p := c.slot(f); p != nil {
		return *p
	}
	return nil
}

// SetValues replaces the criteria list for a text field
func (c *FilterCriteria) SetValues(f Field, values []string) {
	if p := c.slot(f); p != nil {
		*p = values
	}
}

func (c *FilterCriteria) slot(f Field) *[]string {
	switch f {
	case FieldTopic:
		return &c.Topic
	case FieldSector:
		return &c.Sector
	case FieldRegion:
		return &c.Region
	case FieldPestle:
		return &c.Pestle
	case FieldSource:
		return &c.Source
	case FieldCountry:
		return &c.Country
	case FieldCity:
		return &c.City
	}
	return nil
}

// AppliedFilter is the current selection per field.
//
// Text fields are multi-select: OR within a field, AND across fields.
// EndYear is not: its first value is an inclusive upper bound on end_year.
type AppliedFilter struct {
	EndYear []int    `json:"end_year,omitempty"`
	Topic   []string `json:"topic,omitempty"`
	Sector  []string `json:"sector,omitempty"`
	Region  []string `json:"region,omitempty"`
	Pestle  []string `json:"pestle,omitempty"`
	Source  []string `json:"source,omitempty"`
	Country []string `json:"country,omitempty"`
	City    []string `json:"city,omitempty"`
}

// Selected returns the selection for a text field
func (a AppliedFilter) Selected(f Field) []string {
	if p := a.slot(f); p != nil {
		return *p
	}
	return nil
}

// Select replaces the selection for a text field
func (a *AppliedFilter) Select(f Field, values []string) {
	if p := a.slot(f); p != nil {
		*p = values
	}
}

// YearCutoff returns the end_year upper bound when one is selected
func (a AppliedFilter) YearCutoff() (int, bool) {
	if len(a.EndYear) == 0 {
		return 0, false
	}
	return a.EndYear[0], true
}

// IsEmpty reports whether no field carries a selection
func (a AppliedFilter) IsEmpty() bool {
	if len(a.EndYear) > 0 {
		return false
	}
	for _, f := range TextFields {
		if len(a.Selected(f)) > 0 {
			return false
		}
	}
	return true
}

func (a *AppliedFilter) slot(f Field) *[]string {
	switch f {
	case FieldTopic:
		return &a.Topic
	case FieldSector:
		return &a.Sector
	case FieldRegion:
		return &a.Region
	case FieldPestle:
		return &a.Pestle
	case FieldSource:
		return &a.Source
	case FieldCountry:
		return &a.Country
	case FieldCity:
		return &a.City
	}
	return nil
}
