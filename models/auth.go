// models/auth.go

package models

import "time"

type SendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	OTP    string `json:"otp" validate:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthData is the data payload returned by signup and login.
type AuthData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// AuthResponse carries the token alongside the shared response shape.
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	Data    AuthData `json:"data"`
}

type FetchAadhaarRequest struct {
	Aadhaar string `json:"aadhaar" validate:"required"`
}

// AadhaarData pre-fills the registration form from the registry.
type AadhaarData struct {
	FullName string    `json:"fullName"`
	DOB      time.Time `json:"dob"`
	Gender   string    `json:"gender"`
	Email    string    `json:"email"`
	Mobile   string    `json:"mobile"`
	Address  string    `json:"address"`
}

// SubmissionRequest carries the raw registration form. Every field is
// untrusted free text until it passes through utils/sanitize.go.
type SubmissionRequest struct {
	FullName   string `json:"fullName"`
	FatherName string `json:"fatherName"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Aadhaar    string `json:"aadhaar"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	State      string `json:"state"`
	District   string `json:"district"`
}

// SubmissionData reports the outcome of a submission.
type SubmissionData struct {
	ApplicationID string   `json:"applicationId"`
	Status        string   `json:"status"`
	VoterID       string   `json:"voterId,omitempty"`
	Remarks       string   `json:"remarks,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// StatusData is the owner-scoped application status projection.
type StatusData struct {
	ApplicationID string    `json:"applicationId"`
	Status        string    `json:"status"`
	VoterID       string    `json:"voterId,omitempty"`
	SubmittedDate time.Time `json:"submittedDate"`
	Remarks       string    `json:"remarks,omitempty"`
}

// VoterResult is the public projection returned by voter search.
type VoterResult struct {
	VoterID    string `json:"voterId"`
	FullName   string `json:"fullName"`
	FatherName string `json:"fatherName"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
}
