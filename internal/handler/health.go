package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Reports liveness and whether the analyze endpoint is rate limited
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	rateLimit := "disabled"
	if h.limiter != nil {
		rateLimit = "enabled"
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "rate_limit": rateLimit})
}
