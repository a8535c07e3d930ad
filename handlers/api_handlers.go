// --- gradpath-server/handlers/api_handlers.go ---
package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gradpath-server/catalog"
	"gradpath-server/config"
	"gradpath-server/extract"
	"gradpath-server/forecast"
	"gradpath-server/ingestion"
	"gradpath-server/models"
	"gradpath-server/progress"
)

// aggOptions converts the configured heuristics into aggregator options.
func aggOptions(cfg *config.Config, includeInProgress bool) progress.Options {
	overflow := make([]models.Category, 0, len(cfg.Forecast.OverflowCategories))
	for _, c := range cfg.Forecast.OverflowCategories {
		overflow = append(overflow, models.Category(c))
	}
	return progress.Options{
		IncludeInProgress:  includeInProgress,
		HoursPerCredit:     cfg.Forecast.HoursPerCredit,
		OverflowCategories: overflow,
	}
}

func forecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{
		CoursesPerSemester: cfg.Forecast.CoursesPerSemester,
		DefaultTotalHours:  cfg.Forecast.DefaultTotalHours,
	}
}

// requirementsFor looks up a program's table, degrading to an empty table (all
// category requirements zero, default total) when the program has none.
func requirementsFor(store *catalog.Store, program string) models.RequirementTable {
	if table, ok := store.Requirements(program); ok {
		return table
	}
	return models.RequirementTable{Program: program}
}

// UploadTranscript ingests a transcript PDF and returns the parsed course
// records plus advisories.
// POST /api/v1/transcripts?program=bcc  (multipart field "transcript")
func UploadTranscript(store *catalog.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		program := c.Query("program")
		if program == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "program query parameter is required"})
			return
		}
		fileHeader, err := c.FormFile("transcript")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'transcript' is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("Error opening uploaded transcript: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			log.Printf("Error reading uploaded transcript: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		// Extraction is the one hard-failure stage: a partial text stream would
		// fabricate records, so an unreadable document aborts the pipeline.
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.ExtractionTimeout)
		defer cancel()
		text, err := extract.Text(ctx, data)
		if err != nil {
			log.Printf("Transcript extraction failed for program %s: %v", program, err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not extract text from the document", "detail": err.Error()})
			return
		}

		result := ingestion.Parse(text, program, store)
		c.JSON(http.StatusOK, result)
	}
}

// GetPrograms lists the known program identifiers.
// GET /api/v1/programs
func GetPrograms(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"programs": store.Programs()})
	}
}

// GetRequirements returns one program's requirement table.
// GET /api/v1/programs/:program/requirements
func GetRequirements(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		program := c.Param("program")
		table, ok := store.Requirements(program)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No requirement table for program " + program})
			return
		}
		c.JSON(http.StatusOK, table)
	}
}

// GetProgramCatalog returns one program's course catalog.
// GET /api/v1/programs/:program/catalog
func GetProgramCatalog(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		program := c.Param("program")
		entries := store.Entries(program)
		if entries == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No catalog for program " + program})
			return
		}
		c.JSON(http.StatusOK, gin.H{"program": program, "courses": entries})
	}
}

// ComputeProgress aggregates a record list and projects time to graduation.
// POST /api/v1/progress
func ComputeProgress(store *catalog.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProgressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		reqs := requirementsFor(store, req.Program)
		metrics := progress.Aggregate(req.Records, reqs, aggOptions(cfg, req.IncludeInProgress))
		projection := forecast.Estimate(metrics, reqs, forecastConfig(cfg))
		c.JSON(http.StatusOK, models.ProgressReport{Metrics: metrics, Projection: projection})
	}
}
