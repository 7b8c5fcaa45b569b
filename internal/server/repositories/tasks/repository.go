package tasks

import (
	"context"
	"time"

	"github.com/minhtran/taskkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) error

	// ListByUser returns the user's tasks, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)

	// Update applies a coalesce-on-null patch scoped by (id, userID) and
	// reports whether a row matched.
	Update(ctx context.Context, id, userID string, patch models.TaskPatch) (bool, error)

	// Delete removes the task scoped by (id, userID) and reports whether a
	// row matched.
	Delete(ctx context.Context, id, userID string) (bool, error)

	// ListDueReminders returns unreminded, uncompleted tasks with a deadline
	// in (from, to], joined with the owner's email.
	ListDueReminders(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error)

	// MarkReminded flips reminded to true and reports whether the row still
	// existed.
	MarkReminded(ctx context.Context, id string) (bool, error)
}
