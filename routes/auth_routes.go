package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/controllers"
	"github.com/electoral-demo/voterreg_backend/middleware"
)

// RegisterAuthRoutes sets up the public authentication routes.
func RegisterAuthRoutes(e *echo.Echo, rl *middleware.RateLimiter, authController *controllers.AuthController) {
	e.POST("/api/auth/signup", authController.Signup, rl.GeneralLimiter())
	e.POST("/api/auth/login", authController.Login, rl.GeneralLimiter())
}
