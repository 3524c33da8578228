package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck answers liveness probes. It touches no dependency on purpose.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
