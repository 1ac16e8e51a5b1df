// internal/service/analytics/aggregate.go

package analytics

import (
	"cmp"
	"math"
	"slices"

	"vizdash/internal/domain/record"
)

// OthersLabel is the key of the bucket TopN synthesizes for excluded groups
const OthersLabel = "others"

// CountByKey groups records by the value of field and counts each group.
// Records without a value for field are skipped. Groups are ordered by count
// descending; ties keep encounter order.
func CountByKey(records []record.Record, field record.Field) []record.CountGroup {
	index := make(map[string]int)
	groups := make([]record.CountGroup, 0)

	for _, r := range records {
		key, ok := r.Key(field)
		if !ok {
			continue
		}
		if i, seen := index[key]; seen {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, record.CountGroup{Key: key, Count: 1})
	}

	slices.SortStableFunc(groups, byCountDesc)
	return groups
}

// TopN keeps the first n groups of a count-ordered list and folds the rest
// into a single bucket labelled othersLabel. The result is re-ordered by count
// descending. No bucket is added when nothing was folded.
func TopN(groups []record.CountGroup, n int, othersLabel string) []record.CountGroup {
	if n < 0 {
		n = 0
	}
	if len(groups) <= n {
		return slices.Clone(groups)
	}

	top := make([]record.CountGroup, 0, n+1)
	top = append(top, groups[:n]...)

	rest := 0
	for _, g := range groups[n:] {
		rest += g.Count
	}
	top = append(top, record.CountGroup{Key: othersLabel, Count: rest})

	slices.SortStableFunc(top, byCountDesc)
	return top
}

// Page returns groups[offset:offset+limit], clamped to the slice bounds
func Page(groups []record.CountGroup, offset, limit int) []record.CountGroup {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(groups) || limit <= 0 {
		return []record.CountGroup{}
	}
	end := min(offset+limit, len(groups))
	return slices.Clone(groups[offset:end])
}

// TotalCount sums the counts of all groups
func TotalCount(groups []record.CountGroup) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}

// MeanByKey groups records by the value of field and computes the arithmetic
// mean of each metric over the group's records carrying it. Groups keep
// encounter order. With no metrics given, every metric is averaged.
func MeanByKey(records []record.Record, field record.Field, metrics ...record.Metric) []record.MeanGroup {
	if len(metrics) == 0 {
		metrics = record.Metrics
	}

	type accumulator struct {
		key   string
		count int
		sums  []float64
		ns    []int
	}

	index := make(map[string]int)
	accs := make([]*accumulator, 0)

	for _, r := range records {
		key, ok := r.Key(field)
		if !ok {
			continue
		}

		i, seen := index[key]
		if !seen {
			i = len(accs)
			index[key] = i
			accs = append(accs, &accumulator{
				key:  key,
				sums: make([]float64, len(metrics)),
				ns:   make([]int, len(metrics)),
			})
		}

		acc := accs[i]
		acc.count++
		for j, m := range metrics {
			if v, ok := r.Metric(m); ok {
				acc.sums[j] += v
				acc.ns[j]++
			}
		}
	}

	groups := make([]record.MeanGroup, 0, len(accs))
	for _, acc := range accs {
		means := make(map[record.Metric]float64, len(metrics))
		for j, m := range metrics {
			if acc.ns[j] == 0 {
				means[m] = math.NaN()
				continue
			}
			means[m] = acc.sums[j] / float64(acc.ns[j])
		}
		groups = append(groups, record.MeanGroup{
			Key:   acc.key,
			Count: acc.count,
			Means: means,
		})
	}
	return groups
}

func byCountDesc(a, b record.CountGroup) int {
	return cmp.Compare(b.Count, a.Count)
}
