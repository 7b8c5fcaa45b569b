// Package repomanager hands out repositories bound to a DB handle. Because
// repos are constructed over dbx.DBTX, the same manager serves plain
// connections and transactions inside dbx.WithTx.
package repomanager

import (
	"github.com/minhtran/taskkeeper/internal/dbx"
	"github.com/minhtran/taskkeeper/internal/server/repositories/otps"
	"github.com/minhtran/taskkeeper/internal/server/repositories/tasks"
	"github.com/minhtran/taskkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	OTPs(db dbx.DBTX) otps.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
