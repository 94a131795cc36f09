package middleware

import (
	"net/http"
	"time"

	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger attribue un X-Request-ID et logue METHOD PATH -> STATUS (durée)
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := logrus.Fields{
			"source":     "http",
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}
		if actorID, ok := ActorID(c); ok {
			fields["user_id"] = actorID
		}

		entry := utils.Logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Recovery transforme un panic en 500 JSON au lieu de couper la connexion
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		utils.Logger.WithFields(logrus.Fields{
			"source":     "http",
			"request_id": c.GetString("request_id"),
			"panic":      recovered,
		}).Error("panic recovered")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}
