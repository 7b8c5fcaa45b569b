// Package common defines shared constants and sentinel errors used across
// TaskKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")

	// Credential errors.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// OTP lifecycle errors. A wrong code and an already-consumed code map to
	// the same error on purpose.
	ErrorInvalidOTP = errors.New("invalid otp")
	ErrorOTPExpired = errors.New("otp expired")

	// Outbound mail dispatch errors.
	ErrorMailDelivery = errors.New("mail delivery failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
