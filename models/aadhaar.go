// models/aadhaar.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AadhaarRecord is a reference-registry entry keyed by Aadhaar number.
// The registry is read-only to this service; lookups pre-fill the
// registration form.
type AadhaarRecord struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Aadhaar   string             `json:"aadhaar" bson:"aadhaar"`
	FullName  string             `json:"fullName" bson:"fullName"`
	DOB       time.Time          `json:"dob" bson:"dob"`
	Gender    string             `json:"gender" bson:"gender"`
	Email     string             `json:"email" bson:"email"`
	Mobile    string             `json:"mobile" bson:"mobile"`
	Address   string             `json:"address" bson:"address"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
