// Package models holds the persisted entities of the task service.
package models

import "time"

// User is a confirmed account. Users exist only after a completed OTP
// verification; the password hash is the bcrypt hash captured when the
// registration code was requested.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
