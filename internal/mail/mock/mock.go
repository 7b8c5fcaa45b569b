// Package mock provides a testify-based Mailer mock.
package mock

import (
	"context"

	"github.com/minhtran/taskkeeper/internal/mail"
	"github.com/stretchr/testify/mock"
)

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
