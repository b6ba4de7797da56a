package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/catalog"
)

type HealthResponse struct {
	Status  string                 `json:"status"`
	Time    string                 `json:"time"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]string      `json:"checks"`
	Counts  map[catalog.Kind]int64 `json:"counts,omitempty"`
}

type HealthController struct {
	store   HealthChecker
	version string
}

func NewHealthController(store HealthChecker, version string) *HealthController {
	return &HealthController{
		store:   store,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	var counts map[catalog.Kind]int64

	if h.store != nil {
		ctx := c.Request.Context()
		if err := h.store.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if counts, err = h.store.Counts(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Counts:  counts,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
