// internal/server/handlers/query.go

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"vizdash/internal/domain/record"
)

const maxFilterBody = 1 << 20

// ParseFilterQuery reads a filter from repeated query parameters named after
// the record fields, e.g. ?country=India&country=Nigeria&end_year=2025.
func ParseFilterQuery(q url.Values) (record.AppliedFilter, error) {
	var filter record.AppliedFilter

	for _, raw := range q[string(record.FieldEndYear)] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return record.AppliedFilter{}, eris.Wrapf(record.ErrInvalid, "end_year %q is not a year", raw)
		}
		filter.EndYear = append(filter.EndYear, year)
	}

	for _, f := range record.TextFields {
		var values []string
		for _, v := range q[string(f)] {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		filter.Select(f, values)
	}

	return filter, nil
}

// decodeFilter reads an AppliedFilter body. An empty body selects nothing.
func decodeFilter(r *http.Request) (record.AppliedFilter, error) {
	var filter record.AppliedFilter
	if r.Body == nil {
		return filter, nil
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxFilterBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&filter); err != nil {
		if errors.Is(err, io.EOF) {
			return record.AppliedFilter{}, nil
		}
		return record.AppliedFilter{}, eris.Wrapf(record.ErrInvalid, "malformed filter: %v", err)
	}
	return filter, nil
}

// intParam parses a non-negative integer query parameter
func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, eris.Wrapf(record.ErrInvalid, "%s must be a non-negative integer", name)
	}
	return v, nil
}

func fieldParam(q url.Values) (record.Field, error) {
	name := q.Get("field")
	if name == "" {
		return "", eris.Wrap(record.ErrInvalid, "field is required")
	}
	f, ok := record.ParseField(name)
	if !ok {
		return "", eris.Wrapf(record.ErrInvalid, "unknown field %q", name)
	}
	return f, nil
}

func metricParams(q url.Values) ([]record.Metric, error) {
	var metrics []record.Metric
	for _, name := range q["metric"] {
		m, ok := record.ParseMetric(name)
		if !ok {
			return nil, eris.Wrapf(record.ErrInvalid, "unknown metric %q", name)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
