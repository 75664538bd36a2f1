package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/controllers"
	"github.com/electoral-demo/voterreg_backend/middleware"
)

// RegisterRegistrationRoutes sets up the authenticated registration
// routes. All of them require a valid JWT.
func RegisterRegistrationRoutes(e *echo.Echo, jwtSecret string, registerController *controllers.RegisterController) {
	group := e.Group("/api/register")
	group.Use(middleware.JWTMiddleware(jwtSecret))

	group.POST("/fetch-aadhaar", registerController.FetchAadhaar)
	group.POST("/submit", registerController.SubmitApplication)
	group.GET("/status", registerController.GetStatus)
}
