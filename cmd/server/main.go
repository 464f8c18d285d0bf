package main

import (
	"log"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/metrics"
	"agora/internal/middleware"
	"agora/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Initialize Database
	db.Init(cfg.DatabaseURL)

	store := cache.New(cfg.RedisURL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.Origin))
	r.Use(middleware.LoadUser(cfg.JWTSecret))

	// Uploaded sub images
	r.Static("/images", cfg.UploadDir)

	router.RegisterRoutes(r, cfg, store)

	log.Printf("agora server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
