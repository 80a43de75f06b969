package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	var total float64
	found := false
	for _, mf := range metrics {
		if mf.GetName() == name {
			found = true
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
		}
	}
	if !found {
		t.Fatalf("Metric %q not found", name)
	}
	return total
}

func TestRecordRequest(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", http.StatusOK, 50*time.Millisecond)
	c.RecordRequest("POST", http.StatusCreated, 10*time.Millisecond)
	c.RecordRequest("GET", http.StatusForbidden, 5*time.Millisecond)

	if got := counterValue(t, reg, "volunteer_http_requests_total"); got != 3 {
		t.Errorf("http_requests_total = %v, want 3", got)
	}

	if got := counterValue(t, reg, "volunteer_auth_rejections_total"); got != 1 {
		t.Errorf("auth_rejections_total = %v, want 1", got)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	middleware := c.Middleware()(handler)

	req := httptest.NewRequest("GET", "/event", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if got := counterValue(t, reg, "volunteer_http_requests_total"); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}

	if got := counterValue(t, reg, "volunteer_auth_rejections_total"); got != 1 {
		t.Errorf("auth_rejections_total = %v, want 1", got)
	}
}

func TestJobCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordJobEnqueued()
	c.RecordJobEnqueued()
	c.RecordJobProcessed()
	c.RecordJobFailed()
	c.RecordTokenIssued()

	if got := counterValue(t, reg, "volunteer_jobs_enqueued_total"); got != 2 {
		t.Errorf("jobs_enqueued_total = %v, want 2", got)
	}
	if got := counterValue(t, reg, "volunteer_jobs_processed_total"); got != 1 {
		t.Errorf("jobs_processed_total = %v, want 1", got)
	}
	if got := counterValue(t, reg, "volunteer_jobs_failed_total"); got != 1 {
		t.Errorf("jobs_failed_total = %v, want 1", got)
	}
	if got := counterValue(t, reg, "volunteer_tokens_issued_total"); got != 1 {
		t.Errorf("tokens_issued_total = %v, want 1", got)
	}
}

func TestHandler_ReturnsPrometheusFormat(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", http.StatusOK, 100*time.Millisecond)
	c.RecordJobEnqueued()

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	expected := []string{
		"volunteer_http_requests_total",
		"volunteer_http_request_duration_seconds",
		"volunteer_jobs_enqueued_total",
	}

	for _, metric := range expected {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("Response body does not contain %q", metric)
		}
	}
}
