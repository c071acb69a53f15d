package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubetwist"
)

func TestCounters(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())

	m.MoveApplied(cubetwist.NewMove(cubetwist.AxisX, 1, 1), "player")
	m.MoveApplied(cubetwist.NewMove(cubetwist.AxisX, 0, -1), "player")
	m.MoveApplied(cubetwist.NewMove(cubetwist.AxisY, 1, 1), "scramble")
	m.InputDropped()
	m.QueueDepth(3)
	m.Settled()
	m.Scrambled(3)
	m.Solved(3, 42*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movesApplied.WithLabelValues("x", "player")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.movesApplied.WithLabelValues("y", "scramble")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inputDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drains))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.queueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scrambles.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues("3")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.solveSeconds))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.MoveApplied(cubetwist.NewMove(cubetwist.AxisZ, 0, 1), "player")
		m.InputDropped()
		m.Settled()
		m.QueueDepth(1)
		m.Scrambled(2)
		m.Solved(2, time.Second)
	})
	assert.Nil(t, m.Registry())
}

func TestHandler(t *testing.T) {
	m := New()
	m.Scrambled(4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `cubetwist_scrambles_total{size="4"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
