// Package metrics exposes gameplay counters over Prometheus.
//
// A nil *Metrics is valid and records nothing, so callers never need to
// check whether metrics are enabled.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SeamusWaldron/cubetwist"
)

// Metrics holds the cubetwist collectors.
type Metrics struct {
	registry *prometheus.Registry

	movesApplied *prometheus.CounterVec
	inputDropped prometheus.Counter
	drains       prometheus.Counter
	scrambles    *prometheus.CounterVec
	solves       *prometheus.CounterVec
	solveSeconds *prometheus.HistogramVec
	queueDepth   prometheus.Gauge
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newMetrics(reg)
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,

		// movesApplied counts moves landing on the puzzle by axis and source
		movesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cubetwist_moves_applied_total",
			Help: "Total moves applied to the puzzle by axis and source",
		}, []string{"axis", "source"}),

		// inputDropped counts key or drag input dropped by the backlog rule
		inputDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "cubetwist_input_dropped_total",
			Help: "Total key or drag inputs dropped while the move queue was full",
		}),

		drains: f.NewCounter(prometheus.CounterOpts{
			Name: "cubetwist_queue_drains_total",
			Help: "Total times the move queue drained",
		}),

		scrambles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cubetwist_scrambles_total",
			Help: "Total scrambles by puzzle size",
		}, []string{"size"}),

		solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cubetwist_solves_total",
			Help: "Total solves by puzzle size",
		}, []string{"size"}),

		// solveSeconds tracks solve times from 5s to ~1.4h
		solveSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cubetwist_solve_duration_seconds",
			Help:    "Solve time in seconds by puzzle size",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		}, []string{"size"}),

		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "cubetwist_queue_depth",
			Help: "Moves waiting behind the animating move",
		}),
	}
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// MoveApplied records a move landing on the puzzle.
func (m *Metrics) MoveApplied(mv cubetwist.Move, source string) {
	if m == nil {
		return
	}
	m.movesApplied.WithLabelValues(mv.Axis.String(), source).Inc()
}

// InputDropped records input rejected by the backlog rule.
func (m *Metrics) InputDropped() {
	if m == nil {
		return
	}
	m.inputDropped.Inc()
}

// Settled records the move queue draining.
func (m *Metrics) Settled() {
	if m == nil {
		return
	}
	m.drains.Inc()
	m.queueDepth.Set(0)
}

// QueueDepth records the number of waiting moves.
func (m *Metrics) QueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

// Scrambled records a scramble of a puzzle size.
func (m *Metrics) Scrambled(size int) {
	if m == nil {
		return
	}
	m.scrambles.WithLabelValues(strconv.Itoa(size)).Inc()
}

// Solved records a solve and its time.
func (m *Metrics) Solved(size int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(size)
	m.solves.WithLabelValues(label).Inc()
	m.solveSeconds.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve serves /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
