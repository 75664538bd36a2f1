package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/controllers"
	"github.com/electoral-demo/voterreg_backend/middleware"
	"github.com/electoral-demo/voterreg_backend/models"
)

// SetupRoutes configures all API routes by calling individual route
// registration functions.
func SetupRoutes(
	e *echo.Echo,
	rl *middleware.RateLimiter,
	jwtSecret string,
	otpController *controllers.OTPController,
	authController *controllers.AuthController,
	registerController *controllers.RegisterController,
	searchController *controllers.SearchController,
	healthController *controllers.HealthController,
) {
	e.GET("/api/health", healthController.Health)

	RegisterOTPRoutes(e, rl, otpController)
	RegisterAuthRoutes(e, rl, authController)
	RegisterRegistrationRoutes(e, jwtSecret, registerController)
	RegisterSearchRoutes(e, searchController)

	// Catch unknown API routes
	e.Any("/api/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "API route not found",
		})
	})
}
