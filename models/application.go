// models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. Every submission resolves synchronously to
// Approved or Rejected; Pending exists in the schema but is never set
// by the submission flow.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Application is a voter-registration submission. Both accepted and
// rejected submissions persist a record; status and voterId are fixed
// at creation time and never change afterward.
type Application struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ApplicationID string             `json:"applicationId" bson:"applicationId"`
	FullName      string             `json:"fullName" bson:"fullName"`
	FatherName    string             `json:"fatherName" bson:"fatherName"`
	DOB           time.Time          `json:"dob" bson:"dob"`
	Gender        string             `json:"gender" bson:"gender"`
	Aadhaar       string             `json:"aadhaar" bson:"aadhaar"`
	Mobile        string             `json:"mobile" bson:"mobile"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Address       string             `json:"address" bson:"address"`
	State         string             `json:"state" bson:"state"`
	District      string             `json:"district" bson:"district"`
	Status        string             `json:"status" bson:"status"`
	VoterID       string             `json:"voterId,omitempty" bson:"voterId,omitempty"`
	Remarks       string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
