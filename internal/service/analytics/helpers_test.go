package analytics

import (
	"vizdash/internal/domain/record"
)

func year(v int) *int { return &v }

func num(v float64) *float64 { return &v }

// sampleRecords is a small dataset shaped like the production collection
func sampleRecords() []record.Record {
	return []record.Record{
		{ID: "1", EndYear: year(2020), Country: "India", Topic: "oil", Sector: "Energy", Region: "Asia", Intensity: num(6), Relevance: num(2), Likelihood: num(3)},
		{ID: "2", EndYear: year(2027), Country: "United States of America", Topic: "gas", Sector: "Energy", Region: "Northern America", Intensity: num(16), Relevance: num(3), Likelihood: num(4)},
		{ID: "3", Country: "India", Topic: "oil", Sector: "Government", Region: "Asia", Intensity: num(2), Relevance: num(1), Likelihood: num(1)},
		{ID: "4", EndYear: year(2018), Topic: "market", Sector: "Energy", Region: "World", Intensity: num(4)},
		{ID: "5", EndYear: year(2020), Country: "Nigeria", Topic: "gas", City: "Lagos", Region: "Africa", Relevance: num(4), Likelihood: num(2)},
		{ID: "6", EndYear: year(2050), Country: "India", Topic: "oil", Sector: "Energy", Region: "Asia", Intensity: num(10), Relevance: num(5), Likelihood: num(5)},
	}
}

func ids(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
