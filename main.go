
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gradpath-server/catalog"
	"gradpath-server/config"
	"gradpath-server/handlers"
	"gradpath-server/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	// Load the reference data: course catalogs and requirement tables
	store, err := catalog.Load(cfg.CatalogPath, cfg.RequirementsPath)
	if err != nil {
		log.Fatalf("Unable to load reference data: %v", err)
	}
	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	// Initialize Gin router
	router := gin.Default()
	// Middleware
	router.Use(middleware.Logger()) // Custom logger middleware
	// In-memory what-if sessions; discarded on close, never persisted
	sessions := handlers.NewSessionStore()
	// API Routes (version 1)
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/transcripts", handlers.UploadTranscript(store, cfg))
		apiV1.GET("/programs", handlers.GetPrograms(store))
		apiV1.GET("/programs/:program/requirements", handlers.GetRequirements(store))
		apiV1.GET("/programs/:program/catalog", handlers.GetProgramCatalog(store))
		apiV1.POST("/progress", handlers.ComputeProgress(store, cfg))
		apiV1.POST("/simulations", handlers.CreateSimulation(store, cfg, sessions))
		apiV1.POST("/simulations/:session_id/courses", handlers.AddSimulationCourse(sessions))
		apiV1.DELETE("/simulations/:session_id/courses/:code", handlers.RemoveSimulationCourse(sessions))
		apiV1.DELETE("/simulations/:session_id/courses", handlers.ClearSimulationCourses(sessions))
		apiV1.GET("/simulations/:session_id/impact", handlers.GetSimulationImpact(sessions))
		apiV1.DELETE("/simulations/:session_id", handlers.CloseSimulation(sessions))
	}
	// Periodically re-read the catalog and requirement resources so updated
	// reference data is picked up without a restart.
	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for range ticker.C {
			log.Println("Refreshing reference data...")
			if err := store.Reload(); err != nil {
				log.Printf("Error refreshing reference data (keeping previous): %v", err)
			} else {
				log.Println("Reference data refreshed.")
			}
		}
	}()
	// Start the server
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}
	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()
	log.Printf("GRADPATH Server starting on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server startup error: %v", err)
	}
	log.Println("Server exited gracefully.")
}
