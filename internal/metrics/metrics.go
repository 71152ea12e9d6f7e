// Package metrics exposes optional Prometheus counters/gauges for the
// attack engines, grounded on etalazz-vsa's
// internal/ratelimiter/telemetry/churn/prom_counters.go: global vectors
// registered once in init(), an opt-in HTTP exporter that never blocks a
// hot path when disabled.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// IterationsTotal counts attack iterations performed, labeled by
	// attack kind (bruteforce, birthday, hellman).
	IterationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attackbench",
		Name:      "iterations_total",
		Help:      "Total attack iterations performed, by attack kind.",
	}, []string{"kind"})

	// RunsTotal counts completed attack runs, labeled by kind and
	// outcome (preimage_success, collision_success, preimage_failure,
	// general_failure, and terminated for a cancelled hellman run).
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attackbench",
		Name:      "runs_total",
		Help:      "Total completed attack runs, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// RunDurationSeconds observes wall-clock run duration, labeled by
	// kind.
	RunDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "attackbench",
		Name:      "run_duration_seconds",
		Help:      "Attack run wall-clock duration, by kind.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
	}, []string{"kind"})

	// HellmanTablesLoaded gauges how many Hellman tables are currently
	// held in memory by the running online attack.
	HellmanTablesLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "attackbench",
		Name:      "hellman_tables_loaded",
		Help:      "Hellman tables currently loaded in memory by the active online attack.",
	})
)

func init() {
	prometheus.MustRegister(IterationsTotal, RunsTotal, RunDurationSeconds, HellmanTablesLoaded)
}

// Server is an opt-in /metrics HTTP exporter. The zero value is not
// usable; construct with NewServer.
type Server struct {
	httpServer *http.Server
	addr       string
}

// NewServer builds (but does not start) a /metrics exporter bound to
// addr. addr may use port 0; the port actually bound is available from
// Addr() after Start succeeds.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{httpServer: &http.Server{Addr: addr, Handler: mux}}
}

// Addr returns the address Start actually bound to. Only meaningful
// after Start has returned without an immediate bind error.
func (s *Server) Addr() string {
	return s.addr
}

// Start runs the exporter in the background until ctx is cancelled. It
// never blocks the caller's hot path: bind failures are reported on the
// returned channel rather than panicking a worker goroutine.
func (s *Server) Start(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		errCh <- fmt.Errorf("metrics: listen on %s: %w", s.httpServer.Addr, err)
		close(errCh)
		return errCh
	}
	s.addr = ln.Addr().String()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	return errCh
}
