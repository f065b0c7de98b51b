package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordAllocation("allocated")
	m.RecordAllocation("allocated")
	m.RecordAllocation("insufficient_stock")
	m.ObserveRequest(http.MethodPost, "/api/materialevents/", http.StatusCreated, 15*time.Millisecond)

	out := scrape(t, m)
	for _, want := range []string{
		`dreams_allocations_total{result="allocated"} 2`,
		`dreams_allocations_total{result="insufficient_stock"} 1`,
		`dreams_http_requests_total{method="POST",route="/api/materialevents/",status="201"} 1`,
		`dreams_http_request_duration_seconds_count{method="POST",route="/api/materialevents/"} 1`,
		`go_goroutines`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in exposition:\n%s", want, out)
		}
	}
}

func TestMetrics_RegistriesAreIndependent(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	a.RecordAllocation("rejected")
	if strings.Contains(scrape(t, b), `result="rejected"`) {
		t.Fatal("second registry should not see first registry's samples")
	}
}
