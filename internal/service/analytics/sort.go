// internal/service/analytics/sort.go

package analytics

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption configures string sorting
type SortOption func(*sortOptions)

type sortOptions struct {
	caseInsensitive bool
	locale          language.Tag
}

// CaseInsensitive lower-cases both operands before comparing them
func CaseInsensitive() SortOption {
	return func(o *sortOptions) {
		o.caseInsensitive = true
	}
}

// WithLocale sets the collation locale (English by default)
func WithLocale(tag language.Tag) SortOption {
	return func(o *sortOptions) {
		o.locale = tag
	}
}

// Number is the set of numeric types SortNumbers accepts
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// SortStrings returns a new slice holding the non-empty values in ascending
// collation order. Equal values keep their relative order.
func SortStrings(values []string, opts ...SortOption) []string {
	o := sortOptions{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}

	// Collators keep internal buffers and are not safe to share
	col := collate.New(o.locale)
	slices.SortStableFunc(out, func(a, b string) int {
		if o.caseInsensitive {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return col.CompareString(a, b)
	})
	return out
}

// SortNumbers returns a new slice holding the non-zero, non-NaN values in
// ascending numeric order.
func SortNumbers[T Number](values []T) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if f := float64(v); f != 0 && !math.IsNaN(f) {
			out = append(out, v)
		}
	}

	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(a, b)
	})
	return out
}
