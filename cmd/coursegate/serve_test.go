package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cccteam/coursegate/internal/config"
	"github.com/cccteam/logger"
)

func TestNewLogMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         config.Log
		wantTraceID bool
	}{
		{
			name:        "aws exporter",
			cfg:         config.Log{Exporter: config.ExporterAWS},
			wantTraceID: true,
		},
		{
			name: "console exporter",
			cfg:  config.Log{Exporter: config.ExporterConsole, NoColor: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var called bool
			var traceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				traceID = logger.Req(r).TraceID()
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/dashboard", http.NoBody)
			newLogMiddleware(tt.cfg)(next).ServeHTTP(w, r)

			if !called {
				t.Fatalf("newLogMiddleware() did not call the next handler")
			}
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if got := traceID != ""; got != tt.wantTraceID {
				t.Errorf("TraceID() = %q, want non-empty %v", traceID, tt.wantTraceID)
			}
		})
	}
}
