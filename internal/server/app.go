// Package server initializes and runs the application server: it wires the
// database, repositories and services together, handles OS signals, and
// starts the HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/groupspend/groupspend/internal/logging"
	"github.com/groupspend/groupspend/internal/server/config"
	"github.com/groupspend/groupspend/internal/server/httpapi"
	"github.com/groupspend/groupspend/internal/server/repositories/repomanager"
	"github.com/groupspend/groupspend/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	authService    *services.AuthService
	userService    *services.UserService
	groupService   *services.GroupService
	expenseService *services.ExpenseService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	policy := services.NewPolicy(db, rm)
	as := services.NewAuthService(db, rm, logger, cfg)
	us := services.NewUserService(db, rm)
	gs := services.NewGroupService(db, rm, policy, logger)
	es := services.NewExpenseService(db, rm, policy, logger)

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		authService:    as,
		userService:    us,
		groupService:   gs,
		expenseService: es,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.authService, app.userService, app.groupService, app.expenseService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
