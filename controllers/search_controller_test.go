package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electoral-demo/voterreg_backend/models"
)

func seededSearchRepo(t *testing.T) *fakeApplicationRepo {
	t.Helper()
	apps := newFakeApplicationRepo()

	require.NoError(t, apps.Create(nil, &models.Application{
		ApplicationID: "APP2024X0001",
		FullName:      "Ravi Kumar",
		FatherName:    "Suresh Kumar",
		DOB:           time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:        "Male",
		Aadhaar:       "123456789012",
		Address:       "12 MG Road",
		Status:        models.StatusApproved,
		VoterID:       "VOT123456",
	}))
	require.NoError(t, apps.Create(nil, &models.Application{
		ApplicationID: "APP2024X0002",
		FullName:      "Ravi Shankar",
		Aadhaar:       "223456789012",
		Status:        models.StatusRejected,
	}))
	return apps
}

func TestSearchVoter(t *testing.T) {
	e := echo.New()

	t.Run("neither key given", func(t *testing.T) {
		sc := NewSearchController(seededSearchRepo(t))
		req, rec := jsonRequest(http.MethodGet, "/api/search/voter", "")

		require.NoError(t, sc.SearchVoter(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Voter ID or name is required for search", decodeBody(t, rec)["message"])
	})

	t.Run("no match", func(t *testing.T) {
		sc := NewSearchController(seededSearchRepo(t))
		req, rec := jsonRequest(http.MethodGet, "/api/search/voter?voterId=VOT999999", "")

		require.NoError(t, sc.SearchVoter(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No voter found matching the criteria", decodeBody(t, rec)["message"])
	})

	t.Run("by voter id", func(t *testing.T) {
		sc := NewSearchController(seededSearchRepo(t))
		req, rec := jsonRequest(http.MethodGet, "/api/search/voter?voterId=VOT123456", "")

		require.NoError(t, sc.SearchVoter(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["found"])
		assert.Equal(t, float64(1), body["count"])

		result := body["data"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "Ravi Kumar", result["fullName"])
		assert.Equal(t, "VOT123456", result["voterId"])
		assert.Equal(t, float64(time.Now().Year()-2000), result["age"])
	})

	t.Run("by name is case-insensitive and excludes non-approved", func(t *testing.T) {
		sc := NewSearchController(seededSearchRepo(t))
		req, rec := jsonRequest(http.MethodGet, "/api/search/voter?name=ravi", "")

		require.NoError(t, sc.SearchVoter(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		// "Ravi Shankar" matches the name but is Rejected
		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["count"])
		result := body["data"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "Ravi Kumar", result["fullName"])
	})
}
