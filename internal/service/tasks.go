package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tasks-api/internal/errs"
	"tasks-api/internal/models"
	"tasks-api/internal/repository"
	"tasks-api/pkg/logger"
)

// TaskStore is the persistence the task service needs.
type TaskStore interface {
	FindAllByUserID(ctx context.Context, userID string, q models.ListTasksQuery) ([]models.Task, int, error)
	FindByID(ctx context.Context, id string) (models.Task, error)
	Create(ctx context.Context, userID string, in models.CreateTaskInput) (models.Task, error)
	CreateMany(ctx context.Context, userID string, inputs []models.CreateTaskInput) ([]models.Task, error)
	Update(ctx context.Context, id, userID string, in models.UpdateTaskInput) (models.Task, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// EventPublisher receives task lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, evt models.TaskEvent) error
}

// TaskService enforces ownership and computes pagination.
type TaskService struct {
	tasks  TaskStore
	events EventPublisher
	now    func() time.Time
}

// NewTaskService builds the service. events may be nil.
func NewTaskService(tasks TaskStore, events EventPublisher) *TaskService {
	return &TaskService{tasks: tasks, events: events, now: time.Now}
}

// ListTasks returns one page of the user's tasks with its pagination metadata.
func (s *TaskService) ListTasks(ctx context.Context, userID string, q models.ListTasksQuery) ([]models.Task, models.PaginationMeta, error) {
	q.Page, q.Limit = repository.NormalizePage(q.Page, q.Limit)
	tasks, total, err := s.tasks.FindAllByUserID(ctx, userID, q)
	if err != nil {
		return nil, models.PaginationMeta{}, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, models.PaginationMeta{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, in models.CreateTaskInput) (models.Task, error) {
	task, err := s.tasks.Create(ctx, userID, in)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.publish(ctx, models.EventTaskCreated, task)
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (models.Task, error) {
	return s.owned(ctx, userID, taskID)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, in models.UpdateTaskInput) (models.Task, error) {
	if in.Empty() {
		return models.Task{}, errs.Validation(errs.Issue{Code: "custom", Message: "At least one field must be provided"})
	}
	if _, err := s.owned(ctx, userID, taskID); err != nil {
		return models.Task{}, err
	}
	task, err := s.tasks.Update(ctx, taskID, userID, in)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Task{}, errs.NotFound("Task not found")
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	s.publish(ctx, models.EventTaskUpdated, task)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return err
	}
	removed, err := s.tasks.Delete(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !removed {
		return errs.NotFound("Task not found")
	}
	s.publish(ctx, models.EventTaskDeleted, task)
	return nil
}

// ImportTasks stores all inputs under userID atomically.
func (s *TaskService) ImportTasks(ctx context.Context, userID string, inputs []models.CreateTaskInput) ([]models.Task, error) {
	if len(inputs) == 0 {
		return []models.Task{}, nil
	}
	tasks, err := s.tasks.CreateMany(ctx, userID, inputs)
	if err != nil {
		return nil, fmt.Errorf("import tasks: %w", err)
	}
	for _, t := range tasks {
		s.publish(ctx, models.EventTaskImported, t)
	}
	logger.Info(ctx, "Tasks imported", "count", len(tasks))
	return tasks, nil
}

// owned fetches the task and checks that userID owns it.
func (s *TaskService) owned(ctx context.Context, userID, taskID string) (models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Task{}, errs.NotFound("Task not found")
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != userID {
		return models.Task{}, errs.Forbidden("You do not own this task")
	}
	return task, nil
}

// publish never fails the request; the mutation is already committed.
func (s *TaskService) publish(ctx context.Context, typ string, t models.Task) {
	if s.events == nil {
		return
	}
	evt := models.TaskEvent{Type: typ, TaskID: t.ID, UserID: t.UserID, OccurredAt: s.now().UTC()}
	if err := s.events.Publish(ctx, evt); err != nil {
		logger.Warn(ctx, "Task event publish failed", "error", err, "type", typ, "task_id", t.ID)
	}
}
