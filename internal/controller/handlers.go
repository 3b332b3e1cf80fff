package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tasks-api/internal/models"
	"tasks-api/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string, q models.ListTasksQuery) ([]models.Task, models.PaginationMeta, error)
	CreateTask(ctx context.Context, userID string, in models.CreateTaskInput) (models.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, in models.UpdateTaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	ImportTasks(ctx context.Context, userID string, inputs []models.CreateTaskInput) ([]models.Task, error)
}

// FeedSource provides the tasks to import.
type FeedSource interface {
	ImportInputs(ctx context.Context) ([]models.CreateTaskInput, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers holds the services the endpoints delegate to.
type Handlers struct {
	auth  AuthService
	tasks TaskService
	feed  FeedSource
	db    Pinger
}

func NewHandlers(auth AuthService, tasks TaskService, feed FeedSource, db Pinger) *Handlers {
	return &Handlers{auth: auth, tasks: tasks, feed: feed, db: db}
}

// Health returns 200 if the process is alive. Used by load balancers.
func (h *Handlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the database is reachable.
func (h *Handlers) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
		return
	}
	c.String(http.StatusOK, "OK")
}
