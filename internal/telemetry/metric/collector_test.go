package metric

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector()
	c.RecordRequest("GET", 200, 20*time.Millisecond)
	c.RecordRequest("GET", 404, 5*time.Millisecond)
	c.RecordRequest("POST", 0, time.Second)

	families, err := c.Gather().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	samples := map[string]int{}
	for _, mf := range families {
		if mf.GetName() != "custrack_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var method, status string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "method":
					method = l.GetValue()
				case "status":
					status = l.GetValue()
				}
			}
			samples[method+"/"+status] = int(m.GetCounter().GetValue())
		}
	}

	want := map[string]int{"GET/2xx": 1, "GET/4xx": 1, "POST/error": 1}
	for k, v := range want {
		if samples[k] != v {
			t.Errorf("counter %s = %d, want %d (all: %v)", k, samples[k], v, samples)
		}
	}
}

func TestCollector_SetAuthenticated(t *testing.T) {
	c := NewCollector()
	c.SetAuthenticated(true)

	families, err := c.Gather().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "custrack_authenticated" {
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 1 {
				t.Errorf("authenticated gauge = %v, want 1", got)
			}
			return
		}
	}
	t.Fatal("custrack_authenticated not found")
}

func TestCollector_WriteText(t *testing.T) {
	c := NewCollector()
	c.RecordRequest("GET", 200, 10*time.Millisecond)

	var buf bytes.Buffer
	if err := c.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(buf.String(), "custrack_requests_total") {
		t.Errorf("text output missing request counter:\n%s", buf.String())
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{0, "error"},
		{-1, "error"},
	}
	for _, tt := range tests {
		if got := statusClass(tt.status); got != tt.want {
			t.Errorf("statusClass(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
