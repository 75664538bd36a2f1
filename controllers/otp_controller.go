package controllers

import (
	"log"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/config"
	"github.com/electoral-demo/voterreg_backend/models"
	"github.com/electoral-demo/voterreg_backend/repositories"
	"github.com/electoral-demo/voterreg_backend/utils"
)

var otpFormat = regexp.MustCompile(`^[0-9]{6}$`)

// OTPController owns the one-time-code lifecycle: issuance supersedes
// any earlier code for the mobile, verification flips the newest
// matching record, and signup later consumes everything for the mobile.
type OTPController struct {
	otps   repositories.OTPRepository
	cfg    *config.Config
	sms    *utils.SMSService
	logger *log.Logger
}

// NewOTPController creates a new OTP controller
func NewOTPController(otps repositories.OTPRepository, cfg *config.Config, sms *utils.SMSService) *OTPController {
	return &OTPController{
		otps:   otps,
		cfg:    cfg,
		sms:    sms,
		logger: log.New(os.Stdout, "[OTP] ", log.LstdFlags),
	}
}

// SendOTP handles POST /api/otp/send
func (oc *OTPController) SendOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil || req.Mobile == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Mobile number is required",
		})
	}

	mobile, err := utils.SanitizeMobile(req.Mobile)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Valid 10-digit mobile number required",
		})
	}

	// Invalidate every earlier code for this mobile, verified or not
	if err := oc.otps.DeleteAllForMobile(ctx, mobile); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	code := utils.GenerateOTP()
	otp := &models.OTP{
		Mobile:    mobile,
		OTP:       code,
		ExpiresAt: time.Now().Add(oc.cfg.OTPExpiry),
		Verified:  false,
		CreatedAt: time.Now(),
	}

	if err := oc.otps.Create(ctx, otp); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	if !oc.cfg.DemoMode && oc.sms.Configured() {
		if err := oc.sms.SendOTP(mobile, code); err != nil {
			oc.logger.Printf("SMS dispatch failed for %s: %v", utils.MaskMobile(mobile), err)
		}
	}

	response := echo.Map{
		"success": true,
		"message": "OTP sent successfully",
	}
	if oc.cfg.DemoMode {
		response["otp"] = code
		response["note"] = "OTP visible because DEMO_MODE is enabled"
	}

	oc.logger.Printf("OTP sent to mobile: %s", utils.MaskMobile(mobile))
	return c.JSON(http.StatusOK, response)
}

// VerifyOTP handles POST /api/otp/verify
func (oc *OTPController) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil || req.Mobile == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Mobile and OTP are required",
		})
	}

	mobile, err := utils.SanitizeMobile(req.Mobile)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Valid 10-digit mobile number required",
		})
	}

	// Normalize the code before any lookup
	code := nonDigits.ReplaceAllString(req.OTP, "")
	if !otpFormat.MatchString(code) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid OTP format",
		})
	}

	otp, err := oc.otps.FindLatest(ctx, mobile, code)
	if err == repositories.ErrNotFound {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid OTP",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := oc.otps.Delete(ctx, otp.ID); err != nil {
			oc.logger.Printf("failed to delete expired OTP: %v", err)
		}
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "OTP has expired",
		})
	}

	// The record stays behind so signup can confirm verified state
	if err := oc.otps.MarkVerified(ctx, otp.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	oc.logger.Printf("OTP verified for mobile: %s", utils.MaskMobile(mobile))
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP verified successfully",
	})
}

var nonDigits = regexp.MustCompile(`\D`)
