package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SMSService delivers OTP codes through an HTTP SMS gateway. It is
// optional: with no API path configured every send is a silent no-op,
// which is how demo deployments run (the code is echoed in the API
// response instead).
type SMSService struct {
	Username string
	Password string
	SenderID string
	APIPath  string
	Client   *http.Client
}

// NewSMSService creates a new SMS service instance
func NewSMSService(username, password, senderID, apiPath string) *SMSService {
	return &SMSService{
		Username: username,
		Password: password,
		SenderID: senderID,
		APIPath:  apiPath,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether the gateway credentials are present.
func (s *SMSService) Configured() bool {
	return s.APIPath != ""
}

// SendOTP sends an OTP code to the given mobile number.
func (s *SMSService) SendOTP(mobile, otp string) error {
	if !s.Configured() {
		return nil
	}

	params := url.Values{}
	params.Set("username", s.Username)
	params.Set("password", s.Password)
	params.Set("senderid", s.SenderID)
	params.Set("destination", mobile)
	params.Set("message", fmt.Sprintf("Your voter registration OTP is %s. It expires in a few minutes.", otp))

	fullURL := fmt.Sprintf("%s?%s", s.APIPath, params.Encode())

	req, err := http.NewRequest(http.MethodPost, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
