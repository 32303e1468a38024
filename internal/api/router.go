// Package api wires the HTTP surface: middleware, routes, and handlers.
package api

import (
	"github.com/gin-gonic/gin"

	"elektron/internal/api/handlers"
	"elektron/internal/api/middleware"
	"elektron/internal/config"
	"elektron/internal/data"
)

// NewRouter builds the gin engine serving the dashboard, the price feed,
// and the bundled webfonts.
func NewRouter(cfg *config.Config, client *data.SpotPriceClient) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	pricesHandler := handlers.NewPricesHandler(client)
	fontsHandler := handlers.NewFontsHandler(cfg.FontDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/", handlers.Index)
	router.GET("/prices", pricesHandler.GetPrices)
	// Wildcard, not :filename, so traversal attempts like /fonts/../x reach
	// the handler and get rejected instead of falling through to a 404.
	router.GET("/fonts/*filename", fontsHandler.GetFont)

	return router
}
