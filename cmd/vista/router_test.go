package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/screen"
)

type fixedNav screen.State

func (f fixedNav) State() screen.State { return screen.State(f) }

func TestRouter_Navigation(t *testing.T) {
	nav := fixedNav{
		Current:        "game",
		ReturnStack:    []screen.ID{screen.None, "title"},
		Loaded:         []screen.ID{"title", "game"},
		NextTransition: "fade",
		Activating:     true,
	}
	router := newRouter(nav, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/navigation", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got screen.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, screen.State(nav), got)
}

func TestRouter_MetricsOnlyWhenEnabled(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(fixedNav{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	m := telemetry.New()
	m.ScreenActivated("title")
	rec = httptest.NewRecorder()
	newRouter(fixedNav{}, m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(fixedNav{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status": "ok"`)
}
