package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantBody   string
	}{
		{name: "no store check", wantStatus: 200, wantBody: "ok"},
		{name: "store reachable", pinger: pingFunc(func(context.Context) error { return nil }), wantStatus: 200, wantBody: "ok"},
		{name: "store down", pinger: pingFunc(func(context.Context) error { return errors.New("refused") }), wantStatus: 503, wantBody: "store unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/health", nil)
			rec := httptest.NewRecorder()

			HealthHandler(tt.pinger)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if body := rec.Body.String(); body != tt.wantBody {
				t.Fatalf("expected body %q, got %q", tt.wantBody, body)
			}
		})
	}
}
