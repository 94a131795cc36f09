package routes

import (
	"blog-backend/handlers/likes"
	"blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

func LikesRoutes(r *gin.Engine) {
	r.GET("/likes/:post_id", likes.GetLikesByPostID)
	r.POST("/likes", middleware.OptionalAuth(), likes.ToggleLike)

	likesRoutes := r.Group("/likes")
	likesRoutes.Use(middleware.JWTAuth())
	{
		likesRoutes.PUT("/:id", likes.UpdateLike)
		likesRoutes.DELETE("/:id", likes.DeleteLike)
	}
}
