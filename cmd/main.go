package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/handlers"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/jobs"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/middleware"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/models"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/repositories"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/services"
	"github.com/LeeDev428/smile-republic-dcms-sub001/internal/session"
	"github.com/LeeDev428/smile-republic-dcms-sub001/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Session policy
	sessionTTL := 8 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil && minutes > 0 {
			sessionTTL = time.Duration(minutes) * time.Minute
		}
	}
	cookieSecure := os.Getenv("COOKIE_SECURE") == "true"

	sweepInterval := 30 * time.Minute
	if sweepStr := os.Getenv("SESSION_SWEEP_MINUTES"); sweepStr != "" {
		if minutes, err := strconv.Atoi(sweepStr); err == nil && minutes > 0 {
			sweepInterval = time.Duration(minutes) * time.Minute
		}
	}

	// Session store
	sessionStore := session.NewRedisStore(redisAddr, redisPassword, redisDB, sessionTTL)

	// Repositories and services
	accountRepo := repositories.NewAccountRepo(pool)
	authSvc := services.NewAuthService(accountRepo, sessionStore, 5*time.Second)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, sessionStore, sessionTTL, cookieSecure)
	pageHandlers := handlers.NewPageHandlers()
	healthHandlers := handlers.NewHealthHandlers(pool, sessionStore)

	// Background session-index sweeper
	sweeper, err := jobs.NewSessionSweeper(sessionStore, sweepInterval)
	if err != nil {
		log.Fatalf("Failed to create session sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Create Echo instance
	e := echo.New()

	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/healthz", healthHandlers.HealthCheck)
	e.GET("/healthz/ready", healthHandlers.ReadinessCheck)

	// Public pages
	e.GET("/", pageHandlers.Home)
	e.GET("/login", authHandlers.ShowLogin)
	e.POST("/login", authHandlers.Login)
	e.POST("/logout", authHandlers.Logout)

	// Dashboards behind the session guard
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)

	admin := e.Group("/admin", sessionMiddleware.RequireSession(), sessionMiddleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard", pageHandlers.AdminDashboard)

	dentist := e.Group("/dentist", sessionMiddleware.RequireSession(), sessionMiddleware.RequireRole(models.RoleDentist))
	dentist.GET("/dashboard", pageHandlers.DentistDashboard)

	frontdesk := e.Group("/frontdesk", sessionMiddleware.RequireSession(), sessionMiddleware.RequireRole(models.RoleFrontdesk))
	frontdesk.GET("/dashboard", pageHandlers.FrontdeskDashboard)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Smile Republic staff portal v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
