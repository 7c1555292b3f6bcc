package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arnavshah/storeshift-api/pkg/auth"
	"github.com/arnavshah/storeshift-api/pkg/database"
	"github.com/arnavshah/storeshift-api/pkg/engine"
	"github.com/arnavshah/storeshift-api/pkg/handlers"
	"github.com/arnavshah/storeshift-api/pkg/oracle"
	"github.com/arnavshah/storeshift-api/pkg/store"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logConfig := zap.NewProductionConfig()
	if os.Getenv("DEBUG") != "" {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	var orc oracle.Oracle
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		g, err := oracle.NewGemini(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("could not create assignment oracle: %v", err)
		}
		orc = g
	} else {
		log.Printf("GEMINI_API_KEY not set; proposal requests will fail until configured")
	}

	st := store.New(db)
	h := &handlers.Handler{
		DB:     db,
		Store:  st,
		Engine: engine.New(st, orc, logger),
	}

	r := gin.Default()

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "StoreShift Scheduling API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Scheduling Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/proposals", h.ProposeShifts)
		api.POST("/proposals/commit", h.CommitProposals)
		api.POST("/validate", h.ValidateConfig)
		api.GET("/usage", h.GetMyUsage)

		api.GET("/staff", h.ListStaff)
		api.POST("/staff", h.CreateStaff)
		api.DELETE("/staff/:id", h.DeleteStaff)

		api.GET("/requirements", h.ListRequirements)
		api.PUT("/requirements", h.PutRequirement)

		api.GET("/availability", h.ListAvailability)
		api.POST("/availability", h.CreateAvailability)
		api.DELETE("/availability/:id", h.DeleteAvailability)

		api.GET("/timeoff", h.ListTimeOff)
		api.POST("/timeoff", h.CreateTimeOff)
		api.PUT("/timeoff/:id/status", h.UpdateTimeOffStatus)

		api.GET("/shifts", h.ListShifts)
		api.POST("/shifts", h.CreateShift)
		api.DELETE("/shifts/:id", h.DeleteShift)
		api.GET("/shifts/export", h.ExportShiftsCSV)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
