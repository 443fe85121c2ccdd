package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"joelearn/media-api/internal/api"
	"joelearn/media-api/internal/config"
	"joelearn/media-api/internal/repository/mongo"
	"joelearn/media-api/internal/service"
	"joelearn/media-api/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Joe Learn media API...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Credentials ---
	// The credential document lives outside config.yaml; distinguish the
	// failure causes so the fatal message names what actually went wrong.
	creds, err := config.LoadDatabaseCredentials(cfg.Database.CredentialsFile)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrCredentialsNotFound):
			log.Fatalf("FATAL: %v", err)
		case errors.Is(err, config.ErrCredentialsInvalid):
			log.Fatalf("FATAL: %v", err)
		default:
			log.Fatalf("FATAL: Unexpected error loading database credentials: %v", err)
		}
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(creds.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(creds.Database)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureVideoIndexes(ctx, appDB.Collection("videos"))
		mongo.EnsureAssessmentIndexes(ctx, appDB.Collection("assessments"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	var mediaStorage storage.MediaStorage
	switch cfg.Storage.Provider {
	case "", "cloudinary":
		mediaStorage, err = storage.NewCloudinaryStorage(cfg.Cloudinary)
	case "s3":
		mediaStorage, err = storage.NewS3Storage(cfg.S3)
	default:
		log.Fatalf("FATAL: Unknown storage provider %q", cfg.Storage.Provider)
	}
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media storage: %v", err)
	}

	// --- Initialize Repositories ---
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	assessmentRepo := mongo.NewMongoAssessmentRepository(appDB)

	// --- Initialize Services ---
	videoService := service.NewVideoService(videoRepo)
	assessmentService := service.NewAssessmentService(assessmentRepo, mediaStorage)
	mediaService := service.NewMediaService(mediaStorage)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, videoService, assessmentService, mediaService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
