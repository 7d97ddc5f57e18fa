package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.SessionEnded()
		m.GameStarted("tetris")
		m.GameFinished("tetris", 10)
		m.ScoreSaved("tetris", 100)
	})
}

func TestSessionCounters(t *testing.T) {
	m := New()

	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsActive))
}

func TestGameCounters(t *testing.T) {
	m := New()

	m.GameStarted("tetris")
	m.GameStarted("tetris_bag")
	m.GameFinished("tetris", 12)
	m.GameFinished("tetris", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gamesStarted.WithLabelValues("tetris")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gamesStarted.WithLabelValues("tetris_bag")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.gamesFinished.WithLabelValues("tetris")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.linesCleared.WithLabelValues("tetris")))
}

func TestBestScoreOnlyRises(t *testing.T) {
	m := New()

	m.ScoreSaved("tetris", 500)
	m.ScoreSaved("tetris", 300)
	m.ScoreSaved("tetris", 900)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.scoresSaved.WithLabelValues("tetris")))
	assert.Equal(t, 900.0, testutil.ToFloat64(m.bestScore.WithLabelValues("tetris")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.SessionStarted()
	m.GameStarted("tetris")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tetris_ssh_sessions_total 1")
	assert.Contains(t, string(body), `tetris_games_started_total{variant="tetris"} 1`)
}
