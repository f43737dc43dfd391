package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"solar-saver/internal/api/handlers"
	"solar-saver/internal/api/middleware"
	"solar-saver/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// One shared cache so repeat simulations of the same day skip the APIs.
	providers := data.NewProviders(data.NewResponseCache(time.Hour))

	simulateHandler := handlers.NewSimulateHandler(providers)
	batteryHandler := handlers.NewBatteryHandler()
	regionHandler := handlers.NewRegionHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/batteries", batteryHandler.ListBatteries)
		api.GET("/regions", regionHandler.ListRegions)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
