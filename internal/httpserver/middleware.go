package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/util"
	"todoapi/pkg/metrics"
)

// AuthMiddleware guards protected routes. A missing token and an
// invalid or expired one are distinct outcomes: 401 versus 403.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access token required"})
			c.Abort()
			return
		}

		id, err := util.ParseJWT(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		// store the identity in context so handlers can use it
		c.Set("user_id", id.UserID)
		c.Set("username", id.Username)

		c.Next()
	}
}

// RequestLogger logs every request and records its latency metric.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(c.Request.Method, route, strconv.Itoa(status), latency)
	}
}

// Recovery turns a panic into a 500 envelope. The panic value reaches
// the caller only in development mode.
func Recovery(logger *zap.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered", zap.Any("panic", recovered))

		body := gin.H{"success": false, "message": "Internal server error"}
		if development {
			body["error"] = recovered
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
