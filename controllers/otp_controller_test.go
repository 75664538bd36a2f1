package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/electoral-demo/voterreg_backend/config"
	"github.com/electoral-demo/voterreg_backend/models"
	"github.com/electoral-demo/voterreg_backend/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-test-secret-test-secret!",
		OTPExpiry: 5 * time.Minute,
		DemoMode:  true,
	}
}

func jsonRequest(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newOTPController(repo *fakeOTPRepo, cfg *config.Config) *OTPController {
	return NewOTPController(repo, cfg, utils.NewSMSService("", "", "", ""))
}

func TestSendOTP(t *testing.T) {
	e := echo.New()

	t.Run("missing mobile", func(t *testing.T) {
		oc := newOTPController(newFakeOTPRepo(), testConfig())
		req, rec := jsonRequest(http.MethodPost, "/api/otp/send", `{}`)

		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Mobile number is required", decodeBody(t, rec)["message"])
	})

	t.Run("malformed mobile", func(t *testing.T) {
		oc := newOTPController(newFakeOTPRepo(), testConfig())
		req, rec := jsonRequest(http.MethodPost, "/api/otp/send", `{"mobile":"12345"}`)

		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Valid 10-digit mobile number required", decodeBody(t, rec)["message"])
	})

	t.Run("demo mode echoes the code", func(t *testing.T) {
		repo := newFakeOTPRepo()
		oc := newOTPController(repo, testConfig())
		req, rec := jsonRequest(http.MethodPost, "/api/otp/send", `{"mobile":"98765 43210"}`)

		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "OTP sent successfully", body["message"])
		assert.Regexp(t, `^[0-9]{6}$`, body["otp"])
		assert.NotEmpty(t, body["note"])

		// Formatted mobile was sanitized before storage
		records := repo.all("9876543210")
		require.Len(t, records, 1)
		assert.Equal(t, body["otp"], records[0].OTP)
		assert.False(t, records[0].Verified)
	})

	t.Run("non-demo mode hides the code", func(t *testing.T) {
		cfg := testConfig()
		cfg.DemoMode = false
		oc := newOTPController(newFakeOTPRepo(), cfg)
		req, rec := jsonRequest(http.MethodPost, "/api/otp/send", `{"mobile":"9876543210"}`)

		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, decodeBody(t, rec), "otp")
	})

	t.Run("storage failure surfaces as 500", func(t *testing.T) {
		repo := newFakeOTPRepo()
		repo.failed = errors.New("connection reset")
		oc := newOTPController(repo, testConfig())
		req, rec := jsonRequest(http.MethodPost, "/api/otp/send", `{"mobile":"9876543210"}`)

		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, decodeBody(t, rec)["success"])
	})

	t.Run("reissue supersedes the previous code", func(t *testing.T) {
		repo := newFakeOTPRepo()
		oc := newOTPController(repo, testConfig())

		req, rec := jsonRequest(http.MethodPost, "/api/otp/send", `{"mobile":"9876543210"}`)
		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))
		first := decodeBody(t, rec)["otp"].(string)

		req, rec = jsonRequest(http.MethodPost, "/api/otp/send", `{"mobile":"9876543210"}`)
		require.NoError(t, oc.SendOTP(e.NewContext(req, rec)))

		records := repo.all("9876543210")
		require.Len(t, records, 1)

		// Verifying the first code after a second issuance must fail,
		// unless the generator happened to produce the same code again.
		if records[0].OTP != first {
			req, rec = jsonRequest(http.MethodPost, "/api/otp/verify",
				`{"mobile":"9876543210","otp":"`+first+`"}`)
			require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid OTP", decodeBody(t, rec)["message"])
		}
	})
}

func TestVerifyOTP(t *testing.T) {
	e := echo.New()

	seed := func(repo *fakeOTPRepo, mobile, code string, expiresAt time.Time) primitive.ObjectID {
		otp := &models.OTP{
			Mobile:    mobile,
			OTP:       code,
			ExpiresAt: expiresAt,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(nil, otp))
		return otp.ID
	}

	t.Run("missing fields", func(t *testing.T) {
		oc := newOTPController(newFakeOTPRepo(), testConfig())
		req, rec := jsonRequest(http.MethodPost, "/api/otp/verify", `{"mobile":"9876543210"}`)

		require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Mobile and OTP are required", decodeBody(t, rec)["message"])
	})

	t.Run("malformed code", func(t *testing.T) {
		oc := newOTPController(newFakeOTPRepo(), testConfig())
		req, rec := jsonRequest(http.MethodPost, "/api/otp/verify", `{"mobile":"9876543210","otp":"12345"}`)

		require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid OTP format", decodeBody(t, rec)["message"])
	})

	t.Run("wrong code", func(t *testing.T) {
		repo := newFakeOTPRepo()
		seed(repo, "9876543210", "123456", time.Now().Add(5*time.Minute))
		oc := newOTPController(repo, testConfig())

		req, rec := jsonRequest(http.MethodPost, "/api/otp/verify", `{"mobile":"9876543210","otp":"654321"}`)
		require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid OTP", decodeBody(t, rec)["message"])
	})

	t.Run("correct code marks verified and keeps the record", func(t *testing.T) {
		repo := newFakeOTPRepo()
		seed(repo, "9876543210", "123456", time.Now().Add(5*time.Minute))
		oc := newOTPController(repo, testConfig())

		// Punctuation in the code is normalized before lookup
		req, rec := jsonRequest(http.MethodPost, "/api/otp/verify", `{"mobile":"9876543210","otp":"123 456"}`)
		require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OTP verified successfully", decodeBody(t, rec)["message"])

		records := repo.all("9876543210")
		require.Len(t, records, 1)
		assert.True(t, records[0].Verified)
	})

	t.Run("expired code is rejected and removed", func(t *testing.T) {
		repo := newFakeOTPRepo()
		seed(repo, "9876543210", "123456", time.Now().Add(-1*time.Minute))
		oc := newOTPController(repo, testConfig())

		req, rec := jsonRequest(http.MethodPost, "/api/otp/verify", `{"mobile":"9876543210","otp":"123456"}`)
		require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "OTP has expired", decodeBody(t, rec)["message"])
		assert.Empty(t, repo.all("9876543210"))
	})

	t.Run("verify picks the newest of colliding codes", func(t *testing.T) {
		repo := newFakeOTPRepo()
		old := &models.OTP{
			Mobile:    "9876543210",
			OTP:       "123456",
			ExpiresAt: time.Now().Add(-1 * time.Minute),
			CreatedAt: time.Now().Add(-10 * time.Minute),
		}
		require.NoError(t, repo.Create(nil, old))
		seed(repo, "9876543210", "123456", time.Now().Add(5*time.Minute))
		oc := newOTPController(repo, testConfig())

		req, rec := jsonRequest(http.MethodPost, "/api/otp/verify", `{"mobile":"9876543210","otp":"123456"}`)
		require.NoError(t, oc.VerifyOTP(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
