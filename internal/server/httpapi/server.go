// Package httpapi is the HTTP transport of the server. It owns routing,
// request parsing and the mapping of service error kinds to status codes;
// every authorization decision stays in the services layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupspend/groupspend/internal/logging"
	"github.com/groupspend/groupspend/internal/server/models"
)

// AuthService is the part of the authentication flow the transport needs.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	AuthenticateToken(ctx context.Context, tokenString string) (*models.User, error)
	Register(ctx context.Context, username, password, firstName, lastName, email string) (int64, error)
}

// UserService exposes profile queries.
type UserService interface {
	GetUsers(ctx context.Context) ([]*models.User, error)
}

// GroupService exposes group and membership operations.
type GroupService interface {
	GetGroups(ctx context.Context, actorID int64) ([]*models.Group, error)
	GetGroupMembers(ctx context.Context, actorID, groupID int64) ([]*models.User, error)
	AddMember(ctx context.Context, actorID, groupID, targetID int64) error
	CreateGroup(ctx context.Context, authorID int64, name string, memberIDs []int64) (int64, error)
}

// ExpenseService exposes expense operations.
type ExpenseService interface {
	GetExpensesByGroup(ctx context.Context, actorID, groupID int64, createdBefore, createdAfter *time.Time) ([]*models.Expense, error)
	CreateExpense(ctx context.Context, actorID, groupID int64, title string, price float64, description *string) (int64, error)
	UpdateExpense(ctx context.Context, actorID, expenseID int64, upd *models.ExpenseUpdate) error
	DeleteExpense(ctx context.Context, actorID, expenseID int64) error
}

// Server serves the REST API.
type Server struct {
	address  string
	logger   logging.Logger
	auth     AuthService
	users    UserService
	groups   GroupService
	expenses ExpenseService
}

// NewServer constructs a Server.
func NewServer(address string, l logging.Logger, a AuthService, u UserService, g GroupService, e ExpenseService) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		auth:     a,
		users:    u,
		groups:   g,
		expenses: e,
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Router constructs the gin engine with all routes wired.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestIDMiddleware())

	r.POST("/token", s.handleLogin)
	r.POST("/users", s.handleCreateUser)

	authed := r.Group("/")
	authed.Use(s.authMiddleware())
	{
		authed.GET("/users", s.handleGetUsers)
		authed.GET("/users/me", s.handleMe)

		authed.GET("/groups", s.handleGetGroups)
		authed.POST("/groups", s.handleCreateGroup)
		authed.GET("/groups/:id/members", s.handleGetGroupMembers)
		authed.POST("/groups/:id/members", s.handleAddGroupMember)
		authed.GET("/groups/:id/expenses", s.handleGetExpenses)
		authed.POST("/groups/:id/expenses", s.handleCreateExpense)

		authed.PATCH("/expenses/:id", s.handleUpdateExpense)
		authed.DELETE("/expenses/:id", s.handleDeleteExpense)
	}

	return r
}
