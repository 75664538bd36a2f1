package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/controllers"
)

// RegisterSearchRoutes sets up the public voter search route.
func RegisterSearchRoutes(e *echo.Echo, searchController *controllers.SearchController) {
	e.GET("/api/search/voter", searchController.SearchVoter)
}
