// Package otps persists pending registration codes.
package otps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minhtran/taskkeeper/internal/common"
	"github.com/minhtran/taskkeeper/internal/dbx"
	"github.com/minhtran/taskkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, otp *models.EmailOTP) error {

	query :=
		`INSERT INTO email_otps (id, email, otp, expires_at, password_hash)
         VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, otp.ID, otp.Email, otp.Code, otp.ExpiresAt, otp.PasswordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, email, code string) (*models.EmailOTP, error) {
	query :=
		`SELECT id, email, otp, expires_at, password_hash, verified, created_at FROM email_otps
		 WHERE email = $1 AND otp = $2 AND verified = false
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	otp := &models.EmailOTP{}
	err := r.db.QueryRowContext(ctx, query, email, code).Scan(
		&otp.ID, &otp.Email, &otp.Code, &otp.ExpiresAt, &otp.PasswordHash, &otp.Verified, &otp.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return otp, nil
}

func (r *PostgresRepository) MarkVerified(ctx context.Context, id string) error {

	query :=
		`UPDATE email_otps SET verified = true
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) InvalidateAll(ctx context.Context, email string) error {

	query :=
		`UPDATE email_otps SET verified = true
		 WHERE email = $1 AND verified = false
		 `

	_, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
