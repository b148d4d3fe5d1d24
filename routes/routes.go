package routes

import (
	"net/http"

	"HFRegistry/cache"
	"HFRegistry/config"
	"HFRegistry/controllers"
	"HFRegistry/handlers"
	"HFRegistry/middlewares"
	"HFRegistry/repositories"
	"HFRegistry/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Access control is a static bearer token; there are no user accounts.
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	patientRepo := repositories.NewPatientRepository(db, cache)

	admissionService := services.NewAdmissionService()
	patientService := services.NewPatientService(patientRepo, admissionService)
	filterService := services.NewFilterService()
	statsService := services.NewStatsService()

	patientHandler := handlers.NewPatientHandler(patientService)
	registryHandler := handlers.NewRegistryHandler(patientService, filterService, statsService)

	controllers.SetupRegistryRoutes(router, patientHandler, registryHandler)
	controllers.SetupRootRoute(router)

	return router
}
