package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/electoral-demo/voterreg_backend/config"
	"github.com/electoral-demo/voterreg_backend/middleware"
	"github.com/electoral-demo/voterreg_backend/models"
	"github.com/electoral-demo/voterreg_backend/repositories"
	"github.com/electoral-demo/voterreg_backend/utils"
)

// AuthController contains authentication logic
type AuthController struct {
	users  repositories.UserRepository
	otps   repositories.OTPRepository
	cfg    *config.Config
	logger *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(users repositories.UserRepository, otps repositories.OTPRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		users:  users,
		otps:   otps,
		cfg:    cfg,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Signup handles POST /api/auth/signup. An account is created only when
// the mobile carries a verified OTP and the email is unclaimed; success
// consumes every OTP record for the mobile.
func (ac *AuthController) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SignupRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" || req.Mobile == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email, password and mobile are required",
		})
	}

	email, emailErr := utils.SanitizeEmail(req.Email)
	mobile, mobileErr := utils.SanitizeMobile(req.Mobile)
	if emailErr != nil || mobileErr != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email or mobile number format",
		})
	}

	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Password must be at least 6 characters long",
		})
	}

	if _, err := ac.otps.FindVerified(ctx, mobile); err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Mobile number not verified. Please verify OTP first.",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	if _, err := ac.users.FindByEmail(ctx, email); err == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "User already exists with this email",
		})
	} else if err != repositories.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Mobile:   mobile,
	}
	if err := ac.users.Create(ctx, user); err != nil {
		// A concurrent signup can win the unique email index
		if err == repositories.ErrDuplicate {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "User already exists with this email",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	// Codes are single-use across the whole signup transaction
	if err := ac.otps.DeleteAllForMobile(ctx, mobile); err != nil {
		ac.logger.Printf("failed to clean up OTPs for %s: %v", utils.MaskMobile(mobile), err)
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), email, ac.cfg.JWTSecret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ac.logger.Printf("New user registered: %s", email)
	return c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		Data: models.AuthData{
			UserID: user.ID.Hex(),
			Email:  email,
		},
	})
}

// Login handles POST /api/auth/login. Failures stay uninformative so a
// caller cannot tell which of email or password was wrong.
func (ac *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	user, err := ac.users.FindByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid credentials",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), email, ac.cfg.JWTSecret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ac.logger.Printf("User logged in: %s", email)
	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Data: models.AuthData{
			UserID: user.ID.Hex(),
			Email:  email,
		},
	})
}
