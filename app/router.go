// Package app wires shared HTTP routes for both local and Lambda execution.
package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/FelixBlom97/EloStealo/app/config"
)

// NewRouter builds the shared HTTP router for both local and Lambda execution.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", Health)

	api := router.Group("/api")
	api.GET("/rules", Rules)
	api.GET("/games/:id/history", GetHistory)

	// Hot-seat play.
	api.POST("/startgame", StartGame)
	api.POST("/play", Play)
	api.POST("/draw", Draw)
	api.GET("/get_local_info", GetLocalInfo)

	// Online play, keyed by room code.
	api.POST("/start_online", StartOnline)
	api.POST("/online/move", PlayOnline)
	api.POST("/get_game_info", GetGameInfo)

	return router
}
