package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func find(t *testing.T, c *Collector, name string) *dto.MetricFamily {
	t.Helper()
	families, err := c.Gatherer().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestInstrumentRoundTripper_CountsRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCollector()
	hc := &http.Client{Transport: c.InstrumentRoundTripper(nil)}
	for _, p := range []string{"/a", "/b", "/missing"} {
		resp, err := hc.Get(srv.URL + p)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close() //nolint:errcheck
	}

	mf := find(t, c, "tripdesk_api_requests_total")
	if mf == nil {
		t.Fatal("tripdesk_api_requests_total metric not found")
	}
	byCode := map[string]float64{}
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "code" {
				byCode[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if byCode["200"] != 2 {
		t.Errorf("200 count = %v, want 2", byCode["200"])
	}
	if byCode["404"] != 1 {
		t.Errorf("404 count = %v, want 1", byCode["404"])
	}

	hist := find(t, c, "tripdesk_api_request_duration_seconds")
	if hist == nil {
		t.Fatal("duration histogram not found")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("sample count = %d, want 3", got)
	}

	gauge := find(t, c, "tripdesk_api_requests_in_flight")
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 0 {
		t.Error("expected in-flight gauge back at 0")
	}
}

func TestRecordSessionExpired(t *testing.T) {
	c := NewCollector()
	c.RecordSessionExpired()
	c.RecordSessionExpired()

	mf := find(t, c, "tripdesk_session_expired_total")
	if mf == nil {
		t.Fatal("tripdesk_session_expired_total metric not found")
	}
	if v := mf.GetMetric()[0].GetCounter().GetValue(); v != 2 {
		t.Errorf("session_expired_total = %v, want 2", v)
	}
}

func TestWriteFile(t *testing.T) {
	c := NewCollector()
	c.RecordSessionExpired()

	path := filepath.Join(t.TempDir(), "tripdesk.prom")
	if err := c.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "tripdesk_session_expired_total 1") {
		t.Errorf("unexpected metrics file:\n%s", data)
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	c := NewCollector()
	if err := c.WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir", "m.prom")); err == nil {
		t.Fatal("expected error")
	}
}
