// Package server wires the application together: configuration, database,
// repositories, services, the HTTP endpoint, and the reminder scheduler, with
// signal-driven graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/minhtran/taskkeeper/internal/logging"
	"github.com/minhtran/taskkeeper/internal/mail"
	"github.com/minhtran/taskkeeper/internal/nlp"
	"github.com/minhtran/taskkeeper/internal/server/config"
	"github.com/minhtran/taskkeeper/internal/server/db"
	"github.com/minhtran/taskkeeper/internal/server/httpapi"
	"github.com/minhtran/taskkeeper/internal/server/repositories/repomanager"
	"github.com/minhtran/taskkeeper/internal/server/scheduler"
	"github.com/minhtran/taskkeeper/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	server    *httpapi.Server
	scheduler *scheduler.Scheduler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	mailer := mail.NewResendClient(cfg.MailAPIKey, cfg.MailFrom, cfg.MailEndpoint)
	extractor := nlp.NewGeminiClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEndpoint)

	userService := services.NewUserService(database, repos, mailer, cfg)
	taskService := services.NewTaskService(database, repos)

	handler := httpapi.NewHandler(userService, taskService, extractor, logger)
	server := httpapi.NewServer(cfg.EndpointAddr, httpapi.Router(handler, []byte(cfg.SecretKey)), logger)

	sched := scheduler.New(repos.Tasks(database), mailer, logger, cfg.ReminderInterval, cfg.ReminderWindow)

	return &App{config: cfg, logger: logger, server: server, scheduler: sched}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.scheduler.Run(ctx)
	}()

	wg.Wait()
}
