package telemetry

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.EventDispatched("key_down")
	m.EventDispatched("key_down")
	m.EventDispatched("mouse_down")
	m.SetHandlerDepth(2)
	m.TransitionPlayed("fade", 250*time.Millisecond)
	m.SetEffectsActive(4)
	m.ScreenActivated("title")
	m.ContractViolation()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsDispatched.WithLabelValues("key_down")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsDispatched.WithLabelValues("mouse_down")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.handlerDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("fade")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.effectsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.screenActivations.WithLabelValues("title")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contractViolations))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.EventDispatched("quit")
		m.SetHandlerDepth(1)
		m.TransitionPlayed("cut", 0)
		m.SetEffectsActive(0)
		m.ScreenActivated("x")
		m.ContractViolation()
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ScreenActivated("game")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `vista_screen_activations_total{screen="game"} 1`)
}
