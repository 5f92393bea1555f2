package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var durationBuckets = []float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 10000}

type invocationKey struct {
	tool    string
	outcome string
}

// Registry counts tool invocations by tool and outcome and tracks their latency.
type Registry struct {
	mu          sync.Mutex
	invocations map[invocationKey]uint64
	duration    *histogram
}

func NewRegistry() *Registry {
	return &Registry{
		invocations: make(map[invocationKey]uint64),
		duration:    newHistogram(durationBuckets),
	}
}

// ObserveInvocation records one finished tool call.
func (r *Registry) ObserveInvocation(tool, outcome string, elapsed time.Duration) {
	ms := float64(elapsed.Microseconds()) / 1000.0
	if ms < 0 {
		ms = 0
	}

	r.mu.Lock()
	r.invocations[invocationKey{tool: tool, outcome: outcome}]++
	r.mu.Unlock()

	r.duration.Observe(ms)
}

// Count returns the number of invocations seen for tool and outcome.
func (r *Registry) Count(tool, outcome string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invocations[invocationKey{tool: tool, outcome: outcome}]
}

// Handler exposes metrics in Prometheus text format.
func (r *Registry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, r.Render())
	}
}

// Render renders metrics in Prometheus text format.
func (r *Registry) Render() string {
	r.mu.Lock()
	keys := make([]invocationKey, 0, len(r.invocations))
	values := make(map[invocationKey]uint64, len(r.invocations))
	for k, v := range r.invocations {
		keys = append(keys, k)
		values[k] = v
	}
	r.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].tool != keys[j].tool {
			return keys[i].tool < keys[j].tool
		}
		return keys[i].outcome < keys[j].outcome
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# HELP tool_invocations_total Tool invocations by tool and outcome\n")
	fmt.Fprintf(&buf, "# TYPE tool_invocations_total counter\n")
	for _, k := range keys {
		fmt.Fprintf(&buf, "tool_invocations_total{tool=%q,outcome=%q} %d\n", k.tool, k.outcome, values[k])
	}
	writeHistogram(&buf, "tool_invocation_duration_ms", "Tool invocation duration in milliseconds", r.duration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound holds it
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
