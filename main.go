package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/electoral-demo/voterreg_backend/config"
	"github.com/electoral-demo/voterreg_backend/controllers"
	"github.com/electoral-demo/voterreg_backend/middleware"
	"github.com/electoral-demo/voterreg_backend/repositories"
	"github.com/electoral-demo/voterreg_backend/routes"
	"github.com/electoral-demo/voterreg_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	// Connect to database
	client := config.ConnectDB(cfg)
	db := client.Database(cfg.DBName)

	// Connect to Redis (optional, backs the rate limiter)
	redisClient := config.ConnectRedis(cfg)

	// Initialize repositories
	otpRepo := repositories.NewOTPRepository(db)
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	aadhaarRepo := repositories.NewAadhaarRepository(db)

	// Outbound services
	smsService := utils.NewSMSService(cfg.SMSUsername, cfg.SMSPassword, cfg.SMSSenderID, cfg.SMSAPIPath)
	emailService := utils.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	// Initialize controllers
	otpController := controllers.NewOTPController(otpRepo, cfg, smsService)
	authController := controllers.NewAuthController(userRepo, otpRepo, cfg)
	registerController := controllers.NewRegisterController(appRepo, aadhaarRepo, emailService)
	searchController := controllers.NewSearchController(appRepo)
	healthController := controllers.NewHealthController(client)

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(corsConfig(cfg)))
	e.Use(echoMiddleware.Secure())
	e.Use(middleware.SecurityHeaders())

	routes.SetupRoutes(e, rateLimiter, cfg.JWTSecret, otpController, authController, registerController, searchController, healthController)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server start failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT / SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
	log.Println("HTTP server closed.")
}

// corsConfig restricts origins to the configured frontend when set,
// otherwise allows all origins for development.
func corsConfig(cfg *config.Config) echoMiddleware.CORSConfig {
	c := echoMiddleware.DefaultCORSConfig
	if cfg.FrontendURL != "" {
		c.AllowOrigins = []string{cfg.FrontendURL}
		c.AllowCredentials = true
	}
	return c
}
