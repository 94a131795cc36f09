package routes

import (
	"blog-backend/handlers/posts"
	"blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	// Routes publiques, le token sert seulement à voir ses posts privés
	optional := r.Group("/posts")
	optional.Use(middleware.OptionalAuth())
	{
		optional.GET("", posts.GetAllPosts)
		optional.GET("/:id", posts.GetPostByID)
		optional.POST("", posts.CreatePost)
	}

	// Routes protégées
	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.JWTAuth())
	{
		postsRoutes.PUT("/:id", posts.UpdatePost)
		postsRoutes.DELETE("/:id", posts.DeletePost)
	}
}
