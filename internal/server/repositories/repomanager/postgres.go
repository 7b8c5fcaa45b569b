package repomanager

import (
	"github.com/minhtran/taskkeeper/internal/dbx"
	"github.com/minhtran/taskkeeper/internal/server/repositories/otps"
	"github.com/minhtran/taskkeeper/internal/server/repositories/tasks"
	"github.com/minhtran/taskkeeper/internal/server/repositories/users"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) OTPs(db dbx.DBTX) otps.Repository {
	return otps.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewPostgresRepository(db)
}
