package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/electoral-demo/voterreg_backend/middleware"
	"github.com/electoral-demo/voterreg_backend/models"
	"github.com/electoral-demo/voterreg_backend/repositories"
	"github.com/electoral-demo/voterreg_backend/utils"
)

const approvalRemarks = "Application approved automatically. Voter ID generated."

// RegisterController handles Aadhaar pre-fill, submission and the
// owner-scoped status lookup. Every submission resolves synchronously
// to Approved or Rejected; there is no review queue.
type RegisterController struct {
	apps    repositories.ApplicationRepository
	aadhaar repositories.AadhaarRepository
	email   *utils.EmailService
	logger  *log.Logger
}

// NewRegisterController creates a new registration controller
func NewRegisterController(apps repositories.ApplicationRepository, aadhaar repositories.AadhaarRepository, email *utils.EmailService) *RegisterController {
	return &RegisterController{
		apps:    apps,
		aadhaar: aadhaar,
		email:   email,
		logger:  log.New(os.Stdout, "[REGISTER] ", log.LstdFlags),
	}
}

// FetchAadhaar handles POST /api/register/fetch-aadhaar. A registry
// miss is a normal outcome: 200 with null data so the client prompts
// manual entry.
func (rc *RegisterController) FetchAadhaar(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.FetchAadhaarRequest
	if err := c.Bind(&req); err != nil || req.Aadhaar == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Aadhaar number is required",
		})
	}

	aadhaar, err := utils.SanitizeAadhaar(req.Aadhaar)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Valid 12-digit Aadhaar number required",
		})
	}

	record, err := rc.aadhaar.FindByAadhaar(ctx, aadhaar)
	if err == repositories.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    nil,
			"message": "Aadhaar not found, please enter details manually",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	rc.logger.Printf("Aadhaar lookup: %s", aadhaar)
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: models.AadhaarData{
			FullName: record.FullName,
			DOB:      record.DOB,
			Gender:   record.Gender,
			Email:    record.Email,
			Mobile:   record.Mobile,
			Address:  record.Address,
		},
	})
}

// SubmitApplication handles POST /api/register/submit.
func (rc *RegisterController) SubmitApplication(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := primitive.ObjectIDFromHex(middleware.GetUserID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	var req models.SubmissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	// Rejected fields come back empty and fail validation below
	form := sanitizeSubmission(&req)
	dob := parseDOB(req.DOB)

	validation := utils.ValidateRegistration(form, dob, time.Now())

	duplicate, err := rc.apps.HasApprovedAadhaar(ctx, form.Aadhaar)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}
	if duplicate {
		validation.Errors = append(validation.Errors, "Aadhaar already registered with an approved application")
		validation.IsValid = false
	}

	app := &models.Application{
		ApplicationID: utils.GenerateApplicationID(),
		FullName:      form.FullName,
		FatherName:    form.FatherName,
		DOB:           dob,
		Gender:        form.Gender,
		Aadhaar:       form.Aadhaar,
		Mobile:        form.Mobile,
		Email:         form.Email,
		Address:       form.Address,
		State:         form.State,
		District:      form.District,
		UserID:        userID,
	}

	if !validation.IsValid {
		return rc.persistRejection(c, app, validation.Errors)
	}

	app.Status = models.StatusApproved
	app.VoterID = utils.GenerateVoterID()
	app.Remarks = approvalRemarks

	if err := rc.apps.Create(ctx, app); err != nil {
		if err == repositories.ErrDuplicate {
			// Either the generated applicationId collided or a concurrent
			// submission already approved this Aadhaar. Retry once with a
			// fresh id; a second conflict means the Aadhaar index fired.
			app.ID = primitive.NilObjectID
			app.ApplicationID = utils.GenerateApplicationID()
			if retryErr := rc.apps.Create(ctx, app); retryErr != nil {
				if retryErr == repositories.ErrDuplicate {
					errors := append(validation.Errors, "Aadhaar already registered with an approved application")
					app.ID = primitive.NilObjectID
					return rc.persistRejection(c, app, errors)
				}
				return c.JSON(http.StatusInternalServerError, models.Response{
					Success: false,
					Message: retryErr.Error(),
				})
			}
		} else {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
	}

	go rc.email.SendApplicationOutcome(app.Email, app.ApplicationID, app.Status, app.VoterID, app.Remarks)

	rc.logger.Printf("Application submitted: %s by user %s", app.ApplicationID, userID.Hex())
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Application submitted and approved successfully! Your Voter ID is: %s", app.VoterID),
		"data": models.SubmissionData{
			ApplicationID: app.ApplicationID,
			Status:        app.Status,
			VoterID:       app.VoterID,
		},
	})
}

// persistRejection writes the Rejected record and answers 400.
// Rejections are persisted, not silently dropped.
func (rc *RegisterController) persistRejection(c echo.Context, app *models.Application, errors []string) error {
	ctx := c.Request().Context()

	app.Status = models.StatusRejected
	app.VoterID = ""
	app.Remarks = strings.Join(errors, ", ")

	if err := rc.apps.Create(ctx, app); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	go rc.email.SendApplicationOutcome(app.Email, app.ApplicationID, app.Status, "", app.Remarks)

	rc.logger.Printf("Application rejected: %s", app.ApplicationID)
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"message": "Registration rejected due to validation errors",
		"data": models.SubmissionData{
			ApplicationID: app.ApplicationID,
			Status:        app.Status,
			Remarks:       app.Remarks,
			Errors:        errors,
		},
	})
}

// GetStatus handles GET /api/register/status?applicationId=...
// scoped to the caller's own applications.
func (rc *RegisterController) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	applicationID := c.QueryParam("applicationId")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Application ID is required",
		})
	}

	userID, err := primitive.ObjectIDFromHex(middleware.GetUserID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid or expired token",
		})
	}

	app, err := rc.apps.FindByIDForUser(ctx, applicationID, userID)
	if err == repositories.ErrNotFound {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Application not found or you are not authorized to view it",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: models.StatusData{
			ApplicationID: app.ApplicationID,
			Status:        app.Status,
			VoterID:       app.VoterID,
			SubmittedDate: app.CreatedAt,
			Remarks:       app.Remarks,
		},
	})
}

// sanitizeSubmission runs every form field through the sanitizer;
// rejected fields become empty strings.
func sanitizeSubmission(req *models.SubmissionRequest) *models.SubmissionRequest {
	form := &models.SubmissionRequest{DOB: req.DOB}
	form.Aadhaar, _ = utils.SanitizeAadhaar(req.Aadhaar)
	form.Mobile, _ = utils.SanitizeMobile(req.Mobile)
	form.Email, _ = utils.SanitizeEmail(req.Email)
	form.FullName, _ = utils.SanitizeName(req.FullName)
	form.FatherName, _ = utils.SanitizeName(req.FatherName)
	form.Address, _ = utils.SanitizeText(req.Address, 500)
	form.State, _ = utils.SanitizeText(req.State, 100)
	form.District, _ = utils.SanitizeText(req.District, 100)
	form.Gender, _ = utils.SanitizeGender(req.Gender)
	return form
}

// parseDOB accepts a plain date or a full timestamp; the zero time
// means absent or unparseable.
func parseDOB(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}
