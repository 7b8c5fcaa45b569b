// Package services contains the server-side business logic. This file
// implements UserService: the registration OTP lifecycle and login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/minhtran/taskkeeper/internal/common"
	"github.com/minhtran/taskkeeper/internal/dbx"
	"github.com/minhtran/taskkeeper/internal/mail"
	"github.com/minhtran/taskkeeper/internal/server/auth"
	"github.com/minhtran/taskkeeper/internal/server/config"
	"github.com/minhtran/taskkeeper/internal/server/models"
	"github.com/minhtran/taskkeeper/internal/server/repositories/repomanager"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LoginResult is what a successful login returns to the client.
type LoginResult struct {
	Token string
	Email string
}

// UserService owns pending-registration state and token issuance:
//   - RequestCode: hash the password, persist a fresh OTP, mail the code
//   - VerifyCode: consume the OTP and create the account atomically
//   - Login: verify credentials and mint the bearer token
type UserService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	mailer        mail.Mailer
	jwtSecret     []byte
	tokenValidity time.Duration
	otpValidity   time.Duration
	now           func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repos:         m,
		mailer:        mailer,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		otpValidity:   cfg.OTPValidityDuration,
		now:           time.Now,
	}
}

// RequestCode starts a registration: it rejects already-registered emails,
// captures the bcrypt hash, supersedes any earlier pending codes for the
// email, and mails a fresh six-digit code valid for the configured window.
// A mail dispatch failure keeps the pending record, so a retry can reuse
// the flow end to end.
func (s *UserService) RequestCode(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) || password == "" {
		return common.ErrorValidation
	}

	_, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err == nil {
		return common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	code, err := common.RandomOTPCode()
	if err != nil {
		return err
	}

	record := &models.EmailOTP{
		ID:           uuid.NewString(),
		Email:        email,
		Code:         code,
		ExpiresAt:    s.now().Add(s.otpValidity),
		PasswordHash: string(hash),
	}

	// at most one active code per email: retire the old ones and insert the
	// new one in the same transaction
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.OTPs(tx)
		if err := repo.InvalidateAll(ctx, email); err != nil {
			return err
		}
		return repo.Create(ctx, record)
	})
	if err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}

	msg := mail.Message{
		To:      email,
		Subject: "Your registration code",
		HTML:    fmt.Sprintf("<h2>Your code: <b>%s</b></h2><p>Valid for %d minutes</p>", code, int(s.otpValidity.Minutes())),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorMailDelivery, err)
	}

	return nil
}

// VerifyCode consumes the most recent pending code for (email, code) and
// creates the account. Consuming the record and inserting the user happen in
// one transaction; neither is ever observable without the other.
func (s *UserService) VerifyCode(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return common.ErrorValidation
	}

	record, err := s.repos.OTPs(s.db).FindActive(ctx, email, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// wrong code and already-consumed code are the same answer
			return common.ErrorInvalidOTP
		}
		return fmt.Errorf("error looking up otp: %w", err)
	}

	if s.now().After(record.ExpiresAt) {
		return common.ErrorOTPExpired
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: record.PasswordHash,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.OTPs(tx).MarkVerified(ctx, record.ID); err != nil {
			return err
		}
		return s.repos.Users(tx).Create(ctx, user)
	})
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// Login checks the password against the stored bcrypt hash and issues a
// signed bearer token embedding the user's id and email.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &LoginResult{Token: token, Email: user.Email}, nil
}
