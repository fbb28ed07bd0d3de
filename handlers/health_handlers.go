package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	version string
	started time.Time
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, started: time.Now()}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status" example:"UP"`
	Version   string `json:"version" example:"v1.0.0"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
	Timestamp string `json:"timestamp" example:"2025-01-01T00:00:00Z"`
}

// HealthCheckHandler reports that the process is serving. It does not
// contact the registrar. Mounted outside the API base path, so it is not
// part of the swagger document.
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "UP",
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
