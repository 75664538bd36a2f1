package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/electoral-demo/voterreg_backend/controllers"
	"github.com/electoral-demo/voterreg_backend/middleware"
)

// RegisterOTPRoutes sets up the OTP issuance and verification routes.
// Issuance carries the stricter limiter: 5 per window per client.
func RegisterOTPRoutes(e *echo.Echo, rl *middleware.RateLimiter, otpController *controllers.OTPController) {
	e.POST("/api/otp/send", otpController.SendOTP, rl.OTPLimiter())
	e.POST("/api/otp/verify", otpController.VerifyOTP, rl.GeneralLimiter())
}
