// internal/server/handlers/data.go

package handlers

import (
	"bytes"
	"net/http"

	"vizdash/internal/render"
	"vizdash/internal/service/analytics"
	"vizdash/internal/service/dataset"
)

// Dataset exposes the snapshot handlers compute over
type Dataset interface {
	Snapshot() dataset.Snapshot
}

// DataHandler handles dataset, filter and aggregation requests
type DataHandler struct {
	data Dataset
	opts analytics.ViewOptions
}

// NewDataHandler creates a new data handler
func NewDataHandler(data Dataset, opts analytics.ViewOptions) *DataHandler {
	return &DataHandler{
		data: data,
		opts: opts,
	}
}

// GetData returns the full unfiltered dataset
func (h *DataHandler) GetData(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": h.data.Snapshot().Records,
	})
}

// GetCriteria returns the distinct values available per filter field
func (h *DataHandler) GetCriteria(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.data.Snapshot().Criteria)
}

// Filter returns the records matching the posted filter
func (h *DataHandler) Filter(w http.ResponseWriter, r *http.Request) {
	filter, err := decodeFilter(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	matched := analytics.ApplyFilter(h.data.Snapshot().Records, filter)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":  matched,
		"count": len(matched),
	})
}

// View returns every chart input for the posted filter
func (h *DataHandler) View(w http.ResponseWriter, r *http.Request) {
	filter, err := decodeFilter(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	opts, err := h.viewOptions(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analytics.BuildView(h.data.Snapshot().Records, filter, opts))
}

// CountByKey counts records per value of ?field=, optionally folding
// everything past ?top= into an others bucket
func (h *DataHandler) CountByKey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	field, err := fieldParam(q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	top, err := intParam(q, "top", 0)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	filter, err := ParseFilterQuery(q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	records := analytics.ApplyFilter(h.data.Snapshot().Records, filter)
	groups := analytics.CountByKey(records, field)
	if top > 0 {
		groups = analytics.TopN(groups, top, analytics.OthersLabel)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": groups,
	})
}

// MeanByKey averages the requested metrics per value of ?field=
func (h *DataHandler) MeanByKey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	field, err := fieldParam(q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	metrics, err := metricParams(q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	filter, err := ParseFilterQuery(q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	records := analytics.ApplyFilter(h.data.Snapshot().Records, filter)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": analytics.MeanByKey(records, field, metrics...),
	})
}

// Map returns country markers as a GeoJSON FeatureCollection
func (h *DataHandler) Map(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilterQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	records := analytics.ApplyFilter(h.data.Snapshot().Records, filter)
	body, err := analytics.MarkersGeoJSON(analytics.CountryMarkers(records, h.opts.Gazetteer))
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Charts renders the dashboard as an HTML chart page
func (h *DataHandler) Charts(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilterQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	opts, err := h.viewOptions(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	view := analytics.BuildView(h.data.Snapshot().Records, filter, opts)

	var buf bytes.Buffer
	if err := render.Write(&buf, view); err != nil {
		respondWithError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *DataHandler) viewOptions(r *http.Request) (analytics.ViewOptions, error) {
	q := r.URL.Query()
	opts := h.opts

	page, err := intParam(q, "page", 0)
	if err != nil {
		return opts, err
	}
	top, err := intParam(q, "top", opts.TopTopics)
	if err != nil {
		return opts, err
	}

	opts.Page = page
	opts.TopTopics = top
	return opts, nil
}
