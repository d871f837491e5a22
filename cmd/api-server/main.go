package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Vladislav83530/Library/database"
	"github.com/Vladislav83530/Library/internal/config"
	"github.com/Vladislav83530/Library/internal/http-api/auth"
	"github.com/Vladislav83530/Library/internal/http-api/handler"
	"github.com/Vladislav83530/Library/internal/http-api/middleware"
	"github.com/Vladislav83530/Library/internal/http-api/repository"
	"github.com/Vladislav83530/Library/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Repository <- Service <- Handler
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	libraryService := service.NewLibraryService(bookRepo, reviewRepo, ratingRepo)
	deletePolicy := auth.NewSecretKeyPolicy(cfg.SecretKey)
	libraryHandler := handler.NewLibraryHandler(libraryService, deletePolicy)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogging())
	r.Use(middleware.ErrorHandling())

	api := r.Group("/api")
	libraryHandler.RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("Server running at %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("could not start server: %v", err)
	}
}
