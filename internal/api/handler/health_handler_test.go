package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func checkOK(context.Context) error { return nil }
func checkDown(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_Liveness(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	cases := []struct {
		name   string
		checks []DependencyCheck
		code   int
		status string
	}{
		{
			name:   "all up",
			checks: []DependencyCheck{{Name: "postgres", Check: checkOK}, {Name: "redis", Check: checkOK}},
			code:   http.StatusOK,
			status: "ok",
		},
		{
			name:   "optional down",
			checks: []DependencyCheck{{Name: "postgres", Check: checkOK}, {Name: "mongo", Optional: true, Check: checkDown}},
			code:   http.StatusOK,
			status: "ok",
		},
		{
			name:   "required down",
			checks: []DependencyCheck{{Name: "postgres", Check: checkDown}, {Name: "redis", Check: checkOK}},
			code:   http.StatusServiceUnavailable,
			status: "degraded",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(tc.checks...).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.status || len(resp.Dependencies) != len(tc.checks) {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}
