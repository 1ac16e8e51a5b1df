// internal/domain/record/decode.go

package record

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a record leniently. Numeric fields accept numbers,
// numeric strings, "" and null; anything unparseable is treated as absent.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         looseID     `json:"id"`
		MongoID    looseID     `json:"_id"`
		EndYear    looseNumber `json:"end_year"`
		StartYear  looseNumber `json:"start_year"`
		Topic      looseString `json:"topic"`
		Sector     looseString `json:"sector"`
		Region     looseString `json:"region"`
		Pestle     looseString `json:"pestle"`
		Source     looseString `json:"source"`
		Country    looseString `json:"country"`
		City       looseString `json:"city"`
		Intensity  looseNumber `json:"intensity"`
		Relevance  looseNumber `json:"relevance"`
		Likelihood looseNumber `json:"likelihood"`
		Impact     looseNumber `json:"impact"`
		Title      looseString `json:"title"`
		Insight    looseString `json:"insight"`
		URL        looseString `json:"url"`
		Added      looseString `json:"added"`
		Published  looseString `json:"published"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{
		ID:         string(raw.ID),
		EndYear:    raw.EndYear.year(),
		StartYear:  raw.StartYear.year(),
		Topic:      string(raw.Topic),
		Sector:     string(raw.Sector),
		Region:     string(raw.Region),
		Pestle:     string(raw.Pestle),
		Source:     string(raw.Source),
		Country:    string(raw.Country),
		City:       string(raw.City),
		Intensity:  raw.Intensity.value,
		Relevance:  raw.Relevance.value,
		Likelihood: raw.Likelihood.value,
		Impact:     raw.Impact.value,
		Title:      string(raw.Title),
		Insight:    string(raw.Insight),
		URL:        string(raw.URL),
		Added:      string(raw.Added),
		Published:  string(raw.Published),
	}
	if r.ID == "" {
		r.ID = string(raw.MongoID)
	}
	return nil
}

// looseNumber accepts a JSON number or numeric string
type looseNumber struct {
	value *float64
}

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	}
	if text == "" {
		return nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n.value = &f
	return nil
}

// year converts the number to an integer year; fractional values are dropped
func (n looseNumber) year() *int {
	if n.value == nil || *n.value != math.Trunc(*n.value) {
		return nil
	}
	y := int(*n.value)
	return &y
}

// looseString accepts a JSON string or a scalar rendered as text
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		*s = looseString(strings.TrimSpace(v))
	case 'n', 't', 'f', '{', '[':
		// null, booleans and nested values carry no usable text
	default:
		*s = looseString(data)
	}
	return nil
}

// looseID accepts a plain string id or an extended-JSON {"$oid": "..."} object
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '{' {
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(data, &oid); err == nil {
			*id = looseID(oid.OID)
		}
		return nil
	}
	var s looseString
	_ = s.UnmarshalJSON(data)
	*id = looseID(s)
	return nil
}
