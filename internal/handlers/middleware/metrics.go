// internal/handlers/middleware/metrics.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// httpMetricKey identifies one method/path/status bucket
type httpMetricKey struct {
	Method string
	Path   string
	Status int
}

// httpMetricValue accumulates request counts and total latency per bucket
type httpMetricValue struct {
	Count         int64
	TotalDuration time.Duration
}

// metricsRegistry is a small in-process counter store. It backs the
// /metrics endpoint without an external metrics dependency.
type metricsRegistry struct {
	mu      sync.Mutex
	buckets map[httpMetricKey]*httpMetricValue
}

var httpMetrics = &metricsRegistry{
	buckets: make(map[httpMetricKey]*httpMetricValue),
}

func (m *metricsRegistry) record(method, path string, status int, duration time.Duration) {
	key := httpMetricKey{Method: method, Path: path, Status: status}

	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.buckets[key]
	if !ok {
		v = &httpMetricValue{}
		m.buckets[key] = v
	}
	v.Count++
	v.TotalDuration += duration
}

// Snapshot returns a copy of the accumulated HTTP metrics
func (m *metricsRegistry) Snapshot() map[string]map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]map[string]any, len(m.buckets))
	for key, v := range m.buckets {
		name := fmt.Sprintf("%s %s %d", key.Method, key.Path, key.Status)
		avg := time.Duration(0)
		if v.Count > 0 {
			avg = v.TotalDuration / time.Duration(v.Count)
		}
		out[name] = map[string]any{
			"count":           v.Count,
			"avg_duration_ms": float64(avg.Milliseconds()),
		}
	}
	return out
}

// MetricsSnapshot exposes the accumulated metrics for the metrics handler
func MetricsSnapshot() map[string]map[string]any {
	return httpMetrics.Snapshot()
}

// MetricsHandler serves the accumulated HTTP metrics as JSON
func MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"http": httpMetrics.Snapshot()})
	}
}
