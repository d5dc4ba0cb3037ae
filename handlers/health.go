package handlers

import (
	"net/http"

	"campusvenue/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe. It answers 503 once
// Mongo or Redis stopped responding.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.CheckedAt.IsZero() && !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "dependencies": status})
}
