// models/otp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP represents a one-time code issued against a mobile number.
// Records are superseded (deleted) whenever a new code is issued for the
// same mobile, and removed entirely once a signup consumes them. The
// expiresAt field carries a TTL index so expired codes are also purged
// by the storage layer itself.
type OTP struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Mobile    string             `json:"mobile" bson:"mobile"`
	OTP       string             `json:"otp" bson:"otp"`
	ExpiresAt time.Time          `json:"expiresAt" bson:"expiresAt"`
	Verified  bool               `json:"verified" bson:"verified"`
	Attempts  int                `json:"attempts" bson:"attempts"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
