package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TTPzZ/hermit-home/auth"
	"github.com/TTPzZ/hermit-home/controllers"
	"github.com/TTPzZ/hermit-home/ws"
)

// Deps carries the wired controllers into route registration.
type Deps struct {
	Readings   *controllers.ReadingController
	Thresholds *controllers.ThresholdController
	Control    *controllers.ControlController
	Auth       *controllers.AuthController
	Hub        *ws.Hub
	JWTSecret  []byte
}

// InitRoutes mounts every endpoint on the engine.
func InitRoutes(router *gin.Engine, d Deps) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/readings", d.Readings.Ingest)
	api.GET("/readings", d.Readings.List)
	api.GET("/readings/latest", d.Readings.Latest)
	if d.Hub != nil {
		api.GET("/readings/live", d.Hub.Serve)
	}

	api.GET("/users/:userId/current", d.Readings.CurrentStats)
	api.GET("/users/:userId/thresholds", d.Thresholds.Get)
	api.PUT("/users/:userId/thresholds", d.Thresholds.Put)

	api.POST("/control", d.Control.Create)

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	protected := api.Group("/")
	protected.Use(auth.RequireAuth(d.JWTSecret))
	{
		protected.GET("/auth/me", d.Auth.Me)
	}
}
