package otps

import (
	"context"

	"github.com/minhtran/taskkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, otp *models.EmailOTP) error

	// FindActive returns the most recently created unconsumed record matching
	// (email, code), or common.ErrorNotFound.
	FindActive(ctx context.Context, email, code string) (*models.EmailOTP, error)

	// MarkVerified consumes a single record by id.
	MarkVerified(ctx context.Context, id string) error

	// InvalidateAll consumes every unconsumed record for the email, so at
	// most one code is active per address.
	InvalidateAll(ctx context.Context, email string) error
}
