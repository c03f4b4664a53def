// Package metric collects Prometheus metrics for the API client.
//
// The collector implements the gateway's Recorder interface so every
// API request feeds the request counter and latency histogram.
// Metrics stay process-local unless a caller exports them; long-lived
// interactive sessions can serve them with Handler.
package metric

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Collector records API request metrics.
type Collector struct {
	reg       *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	authState prometheus.Gauge
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "custrack_requests_total",
			Help: "API requests by method and status class.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custrack_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		authState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "custrack_authenticated",
			Help: "1 while a session is established, 0 otherwise.",
		}),
	}

	c.reg.MustRegister(c.requests, c.duration, c.authState)
	return c
}

// RecordRequest implements gateway.Recorder. A status of 0 marks a
// transport failure.
func (c *Collector) RecordRequest(method string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, statusClass(status)).Inc()
	c.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// SetAuthenticated records the session state.
func (c *Collector) SetAuthenticated(on bool) {
	if on {
		c.authState.Set(1)
	} else {
		c.authState.Set(0)
	}
}

// Handler serves the collected metrics in Prometheus format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Gather exposes the raw registry, used by tests.
func (c *Collector) Gather() prometheus.Gatherer {
	return c.reg
}

// WriteText writes the current metrics in the Prometheus text
// exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
