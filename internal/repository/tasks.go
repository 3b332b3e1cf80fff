package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasks-api/internal/database"
	"tasks-api/internal/models"
	"tasks-api/pkg/logger"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const taskColumns = `id, user_id, title, description, completed, created_at, updated_at`

// TaskRepository persists tasks. Mutations are scoped to the owning user.
type TaskRepository struct {
	db      *sql.DB
	dialect database.Dialect
	now     func() time.Time
}

func NewTaskRepository(db *sql.DB, dialect database.Dialect) *TaskRepository {
	return &TaskRepository{db: db, dialect: dialect, now: time.Now}
}

// NormalizePage applies defaults to non-positive values and caps limit at MaxLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// FindAllByUserID returns one page of the user's tasks, newest first, and the
// total number of tasks matching the filters.
func (r *TaskRepository) FindAllByUserID(ctx context.Context, userID string, q models.ListTasksQuery) ([]models.Task, int, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	if q.Completed != nil {
		conds = append(conds, "completed = ?")
		args = append(args, *q.Completed)
	}
	if q.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, models.FormatTime(*q.From))
	}
	if q.To != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, models.FormatTime(*q.To))
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT COUNT(*) FROM tasks WHERE `+where), args...).Scan(&total); err != nil {
		logger.Error(ctx, "Repository count tasks failed", "error", err)
		return nil, 0, err
	}

	page, limit := NormalizePage(q.Page, q.Limit)
	rows, err := r.db.QueryContext(ctx,
		r.dialect.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE `+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`),
		append(args, limit, (page-1)*limit)...)
	if err != nil {
		logger.Error(ctx, "Repository FindAllByUserID failed", "error", err)
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error(ctx, "Repository scan task failed", "error", err)
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

// FindByID returns the task regardless of owner, or ErrNotFound.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository FindByID failed", "error", err, "id", id)
		return models.Task{}, err
	}
	return t, nil
}

// Create inserts a new task for userID.
func (r *TaskRepository) Create(ctx context.Context, userID string, in models.CreateTaskInput) (models.Task, error) {
	t, err := r.insert(ctx, r.db, userID, in, r.now())
	if err != nil {
		logger.Error(ctx, "Repository Create failed", "error", err)
		return models.Task{}, err
	}
	return t, nil
}

// CreateMany inserts all inputs in one transaction; on any failure nothing is stored.
func (r *TaskRepository) CreateMany(ctx context.Context, userID string, inputs []models.CreateTaskInput) ([]models.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := r.now()
	tasks := make([]models.Task, 0, len(inputs))
	for i, in := range inputs {
		t, err := r.insert(ctx, tx, userID, in, now)
		if err != nil {
			logger.Error(ctx, "Repository CreateMany failed", "error", err, "index", i)
			return nil, fmt.Errorf("insert task %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return tasks, nil
}

// Update applies the non-nil fields of in to the task owned by userID and
// refreshes updated_at. Returns ErrNotFound if no such task.
func (r *TaskRepository) Update(ctx context.Context, id, userID string, in models.UpdateTaskInput) (models.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []any{models.FormatTime(r.now())}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *in.Completed)
	}
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx,
		r.dialect.Rebind(`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`), args...)
	if err != nil {
		logger.Error(ctx, "Repository Update failed", "error", err, "id", id)
		return models.Task{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Task{}, err
	} else if n == 0 {
		return models.Task{}, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the task owned by userID and reports whether a row was removed.
func (r *TaskRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		logger.Error(ctx, "Repository Delete failed", "error", err, "id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *TaskRepository) insert(ctx context.Context, ex execer, userID string, in models.CreateTaskInput, now time.Time) (models.Task, error) {
	ts := models.FormatTime(now)
	t := models.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	_, err := ex.ExecContext(ctx,
		r.dialect.Rebind(`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.UserID, t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func scanTask(s rowScanner) (models.Task, error) {
	var t models.Task
	err := s.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
