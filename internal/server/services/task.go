package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minhtran/taskkeeper/internal/common"
	"github.com/minhtran/taskkeeper/internal/server/models"
	"github.com/minhtran/taskkeeper/internal/server/repositories/repomanager"
)

// TaskService implements owner-scoped CRUD. Every write matches on both task
// id and owner id; a foreign task is indistinguishable from a missing one.
type TaskService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repos: m}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]models.Task, error) {
	tasks, err := s.repos.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, userID, title string, description *string, deadline *time.Time) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
	}

	if err := s.repos.Tasks(s.db).Create(ctx, task); err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return common.ErrorValidation
	}

	ok, err := s.repos.Tasks(s.db).Update(ctx, taskID, userID, patch)
	if err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	ok, err := s.repos.Tasks(s.db).Delete(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}
