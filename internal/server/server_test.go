package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vizdash/internal/config"
	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
	"vizdash/internal/service/dataset"
)

type staticSource []record.Record

func (s staticSource) FindAll(context.Context) ([]record.Record, error) {
	return s, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := dataset.NewService(staticSource{
		{ID: "1", Country: "India", Topic: "oil"},
		{ID: "2", Country: "Nigeria", Topic: "gas"},
	})
	svc.Load(context.Background())

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 3000, CorsOrigins: []string{"http://localhost:5173"}}
	return NewServer(cfg, svc, analytics.DefaultViewOptions())
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, "127.0.0.1:3000", srv.Addr())

	tests := []struct {
		method   string
		target   string
		body     string
		wantCode int
		wantBody string
	}{
		{http.MethodGet, "/", "", http.StatusOK, `"Welcome to Visualization Dashboard"`},
		{http.MethodGet, "/api/health", "", http.StatusOK, "OK"},
		{http.MethodGet, "/api/v1/data", "", http.StatusOK, `"Nigeria"`},
		{http.MethodGet, "/api/v1/criteria", "", http.StatusOK, `"country":["India","Nigeria"]`},
		{http.MethodPost, "/api/v1/filter", `{"topic":["gas"]}`, http.StatusOK, `"count":1`},
		{http.MethodPost, "/api/v1/view", `{}`, http.StatusOK, `"total":2`},
		{http.MethodGet, "/api/v1/aggregate/count?field=country", "", http.StatusOK, `"key":"India"`},
		{http.MethodGet, "/api/v1/aggregate/mean?field=topic", "", http.StatusOK, `"key":"oil"`},
		{http.MethodGet, "/api/v1/map", "", http.StatusOK, `"FeatureCollection"`},
		{http.MethodGet, "/charts", "", http.StatusOK, "Events by country"},
		{http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound, `{"error":"Page not found"}`},
		{http.MethodGet, "/elsewhere", "", http.StatusNotFound, `{"error":"Page not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/data", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Less(t, rec.Code, 300)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
