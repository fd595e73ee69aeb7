package handlers

import (
	"context"
	"net/http"
	"time"

	"transitlog/internal/repositories"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves health and introspection endpoints.
type SystemHandler struct {
	// Archive is nil when ARCHIVE_DSN is not set.
	Archive *repositories.TripArchiveRepository
	Engine  *gin.Engine
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "transit ledger running"})
}

func (h *SystemHandler) DBCheck(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusOK, gin.H{"message": "archive disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Archive.Ping(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive database unreachable: " + err.Error()})
		return
	}
	count, err := h.Archive.CountCompletedTrips(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "archive database OK", "completed_trips_in_db": count})
}

func (h *SystemHandler) Routes(c *gin.Context) {
	if h.Engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := h.Engine.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
