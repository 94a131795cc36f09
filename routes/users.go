package routes

import (
	"blog-backend/handlers/users"
	"blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	// Routes publiques
	r.GET("/users", users.GetAllUsers)
	r.GET("/users/:id", users.GetUserByID)
	// Un token est nécessaire pour créer un admin
	r.POST("/users", middleware.OptionalAuth(), users.CreateUser)

	// Routes protégées
	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.PUT("/:id", users.UpdateUser)
		usersRoutes.DELETE("/:id", users.DeleteUser)
	}
}
