package ping

import (
	"net/http"

	"blog-backend/db"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// HandlePing répond pong et vérifie que la base répond
// @Summary Ping test
// @Description Health check, also pings the database
// @Tags health
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /ping [get]
func (h *Handler) HandlePing(c *gin.Context) {
	if db.DB != nil {
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.LogError(err, "Database ping failed")
			utils.SendError(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}

	utils.SendSuccess(c, http.StatusOK, "Ping successful", gin.H{
		"message": "pong",
	})
}
