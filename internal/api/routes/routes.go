package routes

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobharvest/internal/api/handlers"
	"jobharvest/internal/api/middleware"
	"jobharvest/internal/config"
	"jobharvest/internal/tasks"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, store tasks.Store, runner *tasks.Runner) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())

	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler)
		health.GET("/live", handlers.LivenessHandler)
	}

	v1 := e.Group("/api/v1")
	{
		v1.POST("/collect", handlers.CollectHandler(cfg, runner))
		v1.GET("/collect/:id", handlers.TaskStatusHandler(store))
	}
}
