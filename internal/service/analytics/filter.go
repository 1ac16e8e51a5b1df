// internal/service/analytics/filter.go

package analytics

import (
	"vizdash/internal/domain/record"
)

// ApplyFilter returns the records passing every active field predicate, in
// input order. The input slice is never modified.
//
// end_year is a cutoff: with a selection [Y] only records whose end_year is
// present and <= Y pass. Every other field is a membership test against its
// selection. Fields with an empty selection impose no constraint.
func ApplyFilter(records []record.Record, filter record.AppliedFilter) []record.Record {
	m := newMatcher(filter)

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// fieldSet is the selection for one text field
type fieldSet struct {
	field  record.Field
	values map[string]struct{}
}

// matcher is an AppliedFilter with lookup sets built once per call
type matcher struct {
	cutoff    int
	hasCutoff bool
	sets      []fieldSet
}

func newMatcher(filter record.AppliedFilter) matcher {
	m := matcher{}
	m.cutoff, m.hasCutoff = filter.YearCutoff()

	for _, f := range record.TextFields {
		selected := filter.Selected(f)
		if len(selected) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(selected))
		for _, v := range selected {
			set[v] = struct{}{}
		}
		m.sets = append(m.sets, fieldSet{field: f, values: set})
	}
	return m
}

func (m matcher) match(r record.Record) bool {
	if m.hasCutoff {
		year, ok := r.Year()
		if !ok || year > m.cutoff {
			return false
		}
	}

	for _, s := range m.sets {
		v := r.Text(s.field)
		if v == "" {
			return false
		}
		if _, ok := s.values[v]; !ok {
			return false
		}
	}
	return true
}
