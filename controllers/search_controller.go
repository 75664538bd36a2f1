package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/models"
	"github.com/electoral-demo/voterreg_backend/repositories"
	"github.com/electoral-demo/voterreg_backend/utils"
)

// SearchController serves the public voter lookup over approved
// applications only.
type SearchController struct {
	apps repositories.ApplicationRepository
}

func NewSearchController(apps repositories.ApplicationRepository) *SearchController {
	return &SearchController{apps: apps}
}

// SearchVoter handles GET /api/search/voter?voterId=... or ?name=...
func (sc *SearchController) SearchVoter(c echo.Context) error {
	ctx := c.Request().Context()

	voterID := c.QueryParam("voterId")
	name := c.QueryParam("name")

	var (
		voters []models.Application
		err    error
	)
	switch {
	case voterID != "":
		voters, err = sc.apps.SearchApprovedByVoterID(ctx, voterID)
	case name != "":
		voters, err = sc.apps.SearchApprovedByName(ctx, name)
	default:
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Voter ID or name is required for search",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	if len(voters) == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "No voter found matching the criteria",
		})
	}

	now := time.Now()
	results := make([]models.VoterResult, 0, len(voters))
	for _, v := range voters {
		results = append(results, models.VoterResult{
			VoterID:    v.VoterID,
			FullName:   v.FullName,
			FatherName: v.FatherName,
			Age:        utils.AgeFromDOB(v.DOB, now),
			Gender:     v.Gender,
			Address:    v.Address,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"found":   true,
		"count":   len(results),
		"data":    results,
	})
}
