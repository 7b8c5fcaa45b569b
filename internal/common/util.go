package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpSpace is the size of the numeric OTP space (codes 000000–999999).
var otpSpace = big.NewInt(1000000)

// RandomOTPCode returns a uniformly random six-digit code, zero-padded.
// Collisions across codes are tolerated; verification matches the most
// recent record, not a unique code.
func RandomOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("otp generation error: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
