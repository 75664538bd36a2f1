// utils/helpers.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOTP returns a 6-digit numeric code, uniformly random across
// the 100000-999999 range.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// GenerateApplicationID returns an identifier of the form APP<year>X<4 digits>.
// Uniqueness is enforced by the applicationId index; callers retry on
// a duplicate-key insert.
func GenerateApplicationID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("APP%dX%d", time.Now().Year(), n.Int64()+1000)
}

// GenerateVoterID returns an identifier of the form VOT<6 digits>.
func GenerateVoterID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("VOT%d", n.Int64()+100000)
}

// MaskMobile hides all but the first 4 digits for log lines.
func MaskMobile(mobile string) string {
	if len(mobile) < 4 {
		return "****"
	}
	return mobile[:4] + "****"
}
