package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. It reports overall service status and pings
// the database with a short timeout so a wedged connection cannot stall
// the probe.
func (s *Server) Health(c *gin.Context) {
	status := "healthy"
	dbStatus := "ok"
	httpStatus := http.StatusOK

	if s.DB != nil {
		sqlDB, err := s.DB.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status = "unhealthy"
			dbStatus = "unavailable"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	uptime := ""
	if startTime, ok := c.Get("serverStartTime"); ok {
		if st, ok := startTime.(time.Time); ok {
			uptime = time.Since(st).Round(time.Second).String()
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    uptime,
	})
}
