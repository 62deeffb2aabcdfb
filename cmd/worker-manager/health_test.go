package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHealthMux(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		path       string
		checks     map[string]readinessCheck
		wantStatus int
		validate   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "liveness ignores dependencies",
			path:       "/health",
			checks:     map[string]readinessCheck{"postgres": down},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "healthy", body["status"])
			},
		},
		{
			name:       "ready when every dependency answers",
			path:       "/ready",
			checks:     map[string]readinessCheck{"postgres": ok, "redis": ok},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "ready", body["status"])
			},
		},
		{
			name:       "not ready when one dependency fails",
			path:       "/ready",
			checks:     map[string]readinessCheck{"postgres": ok, "zeebe": down},
			wantStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "not_ready", body["status"])
				deps := body["dependencies"].(map[string]interface{})
				assert.Equal(t, "ok", deps["postgres"])
				assert.Equal(t, "connection refused", deps["zeebe"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newHealthMux(tt.checks, zaptest.NewLogger(t))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.validate(t, body)
		})
	}
}

func TestHealthMux_Metrics(t *testing.T) {
	mux := newHealthMux(nil, zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
