package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Registered()
	m.Submitted("plastic_can", 9)
	m.Submitted("plastic_can", 9)
	m.Rejected("categories")

	if got := testutil.ToFloat64(m.registrations); got != 1 {
		t.Errorf("registrations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues("plastic_can")); got != 2 {
		t.Errorf("submissions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.points.WithLabelValues("plastic_can")); got != 18 {
		t.Errorf("points = %v, want 18", got)
	}
	if got := testutil.ToFloat64(m.rejections.WithLabelValues("categories")); got != 1 {
		t.Errorf("rejections = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Registered()
	m.Submitted("plastic_bag", 8)
	m.Rejected("register")
}

func TestHandler(t *testing.T) {
	m := New()
	m.Submitted("plastic_bag", 8)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `plasticwallet_points_awarded_total{category="plastic_bag"} 8`) {
		t.Errorf("expected points counter in exposition, got:\n%s", body)
	}
}
