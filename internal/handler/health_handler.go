package handler

import (
	"net/http"

	"my-chat/internal/transport/httpdto"
	"my-chat/pkg/database"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db database.Pinger
}

func NewHealthHandler(db database.Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// CronHealth answers keep-alive pings from external schedulers.
func (h *HealthHandler) CronHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Health reports whether the database is reachable.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.HealthResponse{Status: "unhealthy", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, httpdto.HealthResponse{Status: "healthy"})
}
