// internal/domain/record/group.go

package record

import (
	"encoding/json"
	"math"
)

// CountGroup is the number of records sharing a key
type CountGroup struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// MeanGroup carries the per-metric arithmetic mean of the records sharing a key.
// A metric no record in the group carries has a NaN mean.
type MeanGroup struct {
	Key   string
	Count int
	Means map[Metric]float64
}

// Mean returns the mean of a metric, NaN when it was not computed or had no samples
func (g MeanGroup) Mean(m Metric) float64 {
	v, ok := g.Means[m]
	if !ok {
		return math.NaN()
	}
	return v
}

// MarshalJSON flattens the means next to the key; NaN means become null
func (g MeanGroup) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(g.Means)+2)
	out["key"] = g.Key
	out["count"] = g.Count
	for m, v := range g.Means {
		if math.IsNaN(v) {
			out[string(m)] = nil
			continue
		}
		out[string(m)] = v
	}
	return json.Marshal(out)
}
