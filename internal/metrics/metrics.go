// Package metrics exposes Prometheus counters for the SSH server.
// All methods are safe on a nil *Metrics, so callers need no checks when
// metrics are disabled.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tetris"

// Metrics holds the server collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	sessionsTotal  prometheus.Counter
	sessionsActive prometheus.Gauge
	gamesStarted   *prometheus.CounterVec
	gamesFinished  *prometheus.CounterVec
	linesCleared   *prometheus.CounterVec
	scoresSaved    *prometheus.CounterVec
	bestScore      *prometheus.GaugeVec

	mu   sync.Mutex
	best map[string]int
}

// New creates collectors on a fresh registry, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		best:     make(map[string]int),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_total",
			Help:      "SSH sessions opened.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "SSH sessions currently connected.",
		}),
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started, by variant.",
		}, []string{"variant"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games ended by game over or left before it, by variant.",
		}, []string{"variant"}),
		linesCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Lines cleared in finished games, by variant.",
		}, []string{"variant"}),
		scoresSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_saved_total",
			Help:      "Scores written to the leaderboard, by variant.",
		}, []string{"variant"}),
		bestScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_score",
			Help:      "Highest score saved since the server started, by variant.",
		}, []string{"variant"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessionsTotal,
		m.sessionsActive,
		m.gamesStarted,
		m.gamesFinished,
		m.linesCleared,
		m.scoresSaved,
		m.bestScore,
	)
	return m
}

// SessionStarted records a new SSH connection.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsTotal.Inc()
	m.sessionsActive.Inc()
}

// SessionEnded records a closed SSH connection.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// GameStarted records a game start.
func (m *Metrics) GameStarted(variant string) {
	if m == nil {
		return
	}
	m.gamesStarted.WithLabelValues(variant).Inc()
}

// GameFinished records a game leaving the session with its line count.
func (m *Metrics) GameFinished(variant string, lines int) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(variant).Inc()
	if lines > 0 {
		m.linesCleared.WithLabelValues(variant).Add(float64(lines))
	}
}

// ScoreSaved records a leaderboard entry and raises the best score gauge.
func (m *Metrics) ScoreSaved(variant string, score int) {
	if m == nil {
		return
	}
	m.scoresSaved.WithLabelValues(variant).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best[variant] {
		m.best[variant] = score
		m.bestScore.WithLabelValues(variant).Set(float64(score))
	}
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Serve exposes /metrics on addr until ctx is cancelled.
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
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
