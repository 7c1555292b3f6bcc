package handler

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arnavshah/storeshift-api/pkg/auth"
	"github.com/arnavshah/storeshift-api/pkg/database"
	"github.com/arnavshah/storeshift-api/pkg/engine"
	"github.com/arnavshah/storeshift-api/pkg/handlers"
	"github.com/arnavshah/storeshift-api/pkg/oracle"
	"github.com/arnavshah/storeshift-api/pkg/store"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	var orc oracle.Oracle
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		g, err := oracle.NewGemini(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("could not create assignment oracle: %v", err)
		} else {
			orc = g
		}
	}

	st := store.New(db)
	h := &handlers.Handler{
		DB:     db,
		Store:  st,
		Engine: engine.New(st, orc, logger),
	}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "StoreShift Scheduling API (Vercel)",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

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
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
