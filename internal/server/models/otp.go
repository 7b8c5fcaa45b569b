package models

import "time"

// EmailOTP is one pending registration attempt. Several rows may exist per
// email; only the most recently created unconsumed row with a matching code
// is eligible for verification. Verified marks a consumed row — either used
// to create the account or superseded by a newer code.
type EmailOTP struct {
	ID           string
	Email        string
	Code         string
	ExpiresAt    time.Time
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}
