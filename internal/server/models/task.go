package models

import "time"

// Task is a deadline-bearing todo item owned by a single user.
// Reminded flips false→true exactly once, by the reminder sweep.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Completed   bool       `json:"completed"`
	Reminded    bool       `json:"reminded"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskPatch is a partial update. Nil fields keep their stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Completed   *bool
}

// TaskReminder is one row of the reminder sweep's selection: a due-soon task
// joined with its owner's email.
type TaskReminder struct {
	TaskID   string
	Title    string
	Deadline time.Time
	Email    string
}
