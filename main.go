package main

import (
	"os"

	"blog-backend/config"
	"blog-backend/db"
	_ "blog-backend/docs"
	"blog-backend/routes"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title Blog Backend API
// @version 1.0
// @description Users, posts and likes
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.LogError(err, "Invalid configuration")
		os.Exit(1)
	}

	if err := utils.ConfigureLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		utils.LogError(err, "Logger configuration failed, keeping stdout")
	}

	gin.SetMode(cfg.GinMode)
	gin.DefaultWriter = utils.LogWriter()

	if err := db.InitDB(cfg); err != nil {
		utils.LogError(err, "Database initialisation failed")
		os.Exit(1)
	}

	r := routes.SetupRouter(cfg)

	utils.LogInfo("Listening on " + cfg.Port)
	if err := r.Run(cfg.Port); err != nil {
		utils.LogError(err, "Error while starting the server")
		os.Exit(1)
	}
}
