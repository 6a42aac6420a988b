package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func healthEngine(h *HealthHandler) *gin.Engine {
	engine := gin.New()
	engine.GET("/cron-health", h.CronHealth)
	engine.GET("/health", h.Health)
	return engine
}

func TestCronHealth(t *testing.T) {
	engine := healthEngine(NewHealthHandler(stubPinger{err: errors.New("down")}))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cron-health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"healthy", nil, http.StatusOK, `{"status":"healthy"}`},
		{"unhealthy", errors.New("connection refused"), http.StatusServiceUnavailable, `{"status":"unhealthy","error":"connection refused"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := healthEngine(NewHealthHandler(stubPinger{err: tt.err}))
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
