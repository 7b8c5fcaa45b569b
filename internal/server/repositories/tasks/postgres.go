// Package tasks persists the deadline-bearing todo items.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/minhtran/taskkeeper/internal/dbx"
	"github.com/minhtran/taskkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {

	query :=
		`INSERT INTO tasks (id, user_id, title, description, deadline)
         VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, task.ID, task.UserID, task.Title, task.Description, task.Deadline)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, deadline, completed, reminded, created_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Deadline, &t.Completed, &t.Reminded, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update leaves a column unchanged when its patch field is nil. Ownership is
// part of the WHERE clause, so a foreign task id matches zero rows.
func (r *PostgresRepository) Update(ctx context.Context, id, userID string, patch models.TaskPatch) (bool, error) {

	query :=
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     deadline = COALESCE($3, deadline),
		     completed = COALESCE($4, completed)
		 WHERE id = $5 AND user_id = $6
		 `

	res, err := r.db.ExecContext(ctx, query, patch.Title, patch.Description, patch.Deadline, patch.Completed, id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (bool, error) {

	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error) {
	query :=
		`SELECT t.id, t.title, t.deadline, u.email
		 FROM tasks t
		 JOIN users u ON t.user_id = u.id
		 WHERE t.completed = false
		   AND t.reminded = false
		   AND t.deadline IS NOT NULL
		   AND t.deadline > $1
		   AND t.deadline <= $2
		 `

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.TaskReminder
	for rows.Next() {
		var rem models.TaskReminder
		if err := rows.Scan(&rem.TaskID, &rem.Title, &rem.Deadline, &rem.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkReminded(ctx context.Context, id string) (bool, error) {

	query :=
		`UPDATE tasks SET reminded = true
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}
