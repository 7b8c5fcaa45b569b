// Package scheduler runs the deadline-reminder sweep: a fixed-cadence scan
// for tasks coming due that mails each owner once per task.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/minhtran/taskkeeper/internal/logging"
	"github.com/minhtran/taskkeeper/internal/mail"
	"github.com/minhtran/taskkeeper/internal/server/models"
)

// TaskSource is the slice of the task store the sweep needs.
type TaskSource interface {
	ListDueReminders(ctx context.Context, from, to time.Time) ([]models.TaskReminder, error)
	MarkReminded(ctx context.Context, id string) (bool, error)
}

// Scheduler owns the reminder loop. The clock is injectable so tests can
// pin the window without waiting on wall time.
type Scheduler struct {
	tasks    TaskSource
	mailer   mail.Mailer
	logger   logging.Logger
	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

func New(tasks TaskSource, mailer mail.Mailer, logger logging.Logger, interval, window time.Duration) *Scheduler {
	return &Scheduler{
		tasks:    tasks,
		mailer:   mailer,
		logger:   logger.With("module", "scheduler"),
		interval: interval,
		window:   window,
		now:      time.Now,
	}
}

// Run ticks until the context is cancelled. Sweep errors are logged and the
// schedule continues; nothing escapes the loop.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "Starting reminder scheduler", "interval", s.interval.String(), "window", s.window.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping reminder scheduler...")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error(ctx, "Sweep failed", "error", err.Error())
			}
		}
	}
}

// Sweep selects every due-soon task joined with its owner's email, mails a
// reminder, and marks the task reminded. The order matters: mail first, flag
// second, so a crash in between re-sends rather than silently drops
// (at-least-once delivery). A failed dispatch leaves the task eligible for
// the next sweep and never aborts the rest of the batch.
func (s *Scheduler) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	reminders, err := s.tasks.ListDueReminders(ctx, now, now.Add(s.window))
	if err != nil {
		return 0, fmt.Errorf("failed to select due tasks: %w", err)
	}

	if len(reminders) == 0 {
		s.logger.Debug(ctx, "Nothing due")
		return 0, nil
	}

	notified := 0
	for _, rem := range reminders {
		msg := mail.Message{
			To:      rem.Email,
			Subject: "Task reminder",
			HTML:    fmt.Sprintf("<p>Task <b>%s</b> is due at %s</p>", rem.Title, rem.Deadline.Local().Format("15:04, Jan 2 2006")),
		}

		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error(ctx, "Reminder dispatch failed", "task_id", rem.TaskID, "error", err.Error())
			continue
		}

		ok, err := s.tasks.MarkReminded(ctx, rem.TaskID)
		if err != nil {
			s.logger.Error(ctx, "Failed to mark task reminded", "task_id", rem.TaskID, "error", err.Error())
			continue
		}
		if !ok {
			// task completed or deleted between selection and the write
			s.logger.Warn(ctx, "Task vanished before flag update", "task_id", rem.TaskID)
			continue
		}

		notified++
	}

	s.logger.Info(ctx, "Sweep finished", "selected", len(reminders), "notified", notified)
	return notified, nil
}
