// internal/service/analytics/criteria.go

package analytics

import (
	"vizdash/internal/domain/record"
)

// BuildFilterCriteria collects the distinct non-empty values of every
// filterable field in one pass, then sorts each list: end_year numerically,
// text fields by collation order.
func BuildFilterCriteria(records []record.Record, opts ...SortOption) record.FilterCriteria {
	var years []int
	seenYears := make(map[int]struct{})

	text := make(map[record.Field][]string, len(record.TextFields))
	seen := make(map[record.Field]map[string]struct{}, len(record.TextFields))
	for _, f := range record.TextFields {
		seen[f] = make(map[string]struct{})
	}

	for _, r := range records {
		if year, ok := r.Year(); ok {
			if _, dup := seenYears[year]; !dup {
				seenYears[year] = struct{}{}
				years = append(years, year)
			}
		}

		for _, f := range record.TextFields {
			v := r.Text(f)
			if v == "" {
				continue
			}
			if _, dup := seen[f][v]; dup {
				continue
			}
			seen[f][v] = struct{}{}
			text[f] = append(text[f], v)
		}
	}

	criteria := record.FilterCriteria{
		EndYear: SortNumbers(years),
	}
	for _, f := range record.TextFields {
		criteria.SetValues(f, SortStrings(text[f], opts...))
	}
	return criteria
}
