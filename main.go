package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/tripplanhq/tripplan-backend/handlers"
	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/metrics"
	"github.com/tripplanhq/tripplan-backend/repository"
	"github.com/tripplanhq/tripplan-backend/routes"
	"github.com/tripplanhq/tripplan-backend/services"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment variables")
	}

	// Initialize New Relic
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("TripPlan API"),
		newrelic.ConfigLicense(os.Getenv("NEW_RELIC_LICENSE_KEY")),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		log.Warn("failed to initialize New Relic", "error", err)
	}

	// Initialize database
	db, err := repository.Connect()
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := repository.InitSchema(db); err != nil {
		log.Fatal("failed to initialize schema", "error", err)
	}

	m := metrics.NewMetrics("tripplan")

	// Repositories
	tripRepo := repository.NewTripRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	routeCacheRepo := repository.NewRouteCacheRepository(db)

	// Services
	routeCacheTTL := envDurationHours("ROUTE_CACHE_TTL_HOURS", 24)
	tripService := services.NewTripService(tripRepo, itineraryRepo, routeCacheRepo, log)
	itineraryService := services.NewItineraryService(tripRepo, itineraryRepo, placeRepo)
	budgetService := services.NewBudgetService(tripRepo, budgetRepo)
	mapService := services.NewMapService(itineraryRepo, routeCacheRepo, routeCacheTTL, log)
	aiClient := services.NewAIClient(log, m)
	recommendationService := services.NewRecommendationService(aiClient, tripRepo, mapService, log)
	exportService := services.NewExportService(tripService, budgetService)

	h := handlers.New(tripService, itineraryService, budgetService, mapService,
		recommendationService, exportService, aiClient, log)

	// Drop stale route cache rows periodically
	go cleanRouteCache(routeCacheRepo, routeCacheTTL, log)

	// Set up Gin router
	router := gin.Default()

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Change to your frontend URL in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-User-Email", "X-User-Roles"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(m.Middleware())

	// Set up routes
	routes.SetupRoutes(router, h)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	log.Info("server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("failed to start server", "error", err)
	}
}

// cleanRouteCache expires cached routes older than the TTL once an hour.
func cleanRouteCache(repo *repository.RouteCacheRepository, ttl time.Duration, log logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		dropped, err := repo.DeleteOlderThan(ttl)
		if err != nil {
			log.Warn("route cache cleanup failed", "error", err)
			continue
		}
		if dropped > 0 {
			log.Info("expired route cache rows", "count", dropped)
		}
	}
}

func envDurationHours(key string, fallback int) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return time.Duration(fallback) * time.Hour
}
