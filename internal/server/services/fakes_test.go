package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/minhtran/taskkeeper/internal/common"
	"github.com/minhtran/taskkeeper/internal/dbx"
	"github.com/minhtran/taskkeeper/internal/server/models"
	"github.com/minhtran/taskkeeper/internal/server/repositories/otps"
	"github.com/minhtran/taskkeeper/internal/server/repositories/repomanager"
	"github.com/minhtran/taskkeeper/internal/server/repositories/tasks"
	"github.com/minhtran/taskkeeper/internal/server/repositories/users"
)

// newTxCapableDB returns an in-memory database that supports Begin/Commit so
// dbx.WithTx works; the fakes below hold the actual state.
func newTxCapableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// --- stateful in-memory repositories ---

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return common.ErrorAlreadyExists
	}
	u := *user
	u.CreatedAt = time.Now()
	f.users[user.Email] = &u
	return nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeOTPRepo struct {
	mu      sync.Mutex
	records []*models.EmailOTP
	seq     int
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{}
}

func (f *fakeOTPRepo) Create(ctx context.Context, otp *models.EmailOTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := *otp
	f.seq++
	rec.CreatedAt = time.Unix(int64(f.seq), 0) // strictly increasing
	f.records = append(f.records, &rec)
	return nil
}

func (f *fakeOTPRepo) FindActive(ctx context.Context, email, code string) (*models.EmailOTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	candidates := make([]*models.EmailOTP, 0)
	for _, r := range f.records {
		if r.Email == email && r.Code == code && !r.Verified {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, common.ErrorNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	copied := *candidates[0]
	return &copied, nil
}

func (f *fakeOTPRepo) MarkVerified(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			r.Verified = true
		}
	}
	return nil
}

func (f *fakeOTPRepo) InvalidateAll(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.Email == email {
			r.Verified = true
		}
	}
	return nil
}

// latest returns the newest record for an email, consumed or not.
func (f *fakeOTPRepo) latest(email string) *models.EmailOTP {
	f.mu.Lock()
	defer f.mu.Unlock()
	var newest *models.EmailOTP
	for _, r := range f.records {
		if r.Email != email {
			continue
		}
		if newest == nil || r.CreatedAt.After(newest.CreatedAt) {
			newest = r
		}
	}
	if newest == nil {
		return nil
	}
	copied := *newest
	return &copied
}

type fakeTasksRepo struct {
	mu    sync.Mutex
	tasks []*models.Task
	seq   int

	updateErr error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{}
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := *task
	f.seq++
	t.CreatedAt = time.Unix(int64(f.seq), 0)
	f.tasks = append(f.tasks, &t)
	return nil
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, id, userID string, patch models.TaskPatch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return false, f.updateErr
	}
	for _, t := range f.tasks {
		if t.ID != id || t.UserID != userID {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = patch.Description
		}
		if patch.Deadline != nil {
			t.Deadline = patch.Deadline
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id && t.UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTasksRepo) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error) {
	// the user-facing services never call this; the scheduler package has
	// its own fakes
	return nil, nil
}

func (f *fakeTasksRepo) MarkReminded(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			t.Reminded = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTasksRepo) get(id string) *models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			copied := *t
			return &copied
		}
	}
	return nil
}

// --- manager wiring the fakes regardless of the DB handle ---

type fakeRepoManager struct {
	usersRepo *fakeUsersRepo
	otpRepo   *fakeOTPRepo
	tasksRepo *fakeTasksRepo
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		usersRepo: newFakeUsersRepo(),
		otpRepo:   newFakeOTPRepo(),
		tasksRepo: newFakeTasksRepo(),
	}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.usersRepo }
func (m *fakeRepoManager) OTPs(db dbx.DBTX) otps.Repository   { return m.otpRepo }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository { return m.tasksRepo }
