package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tasks-api/internal/database"
	"tasks-api/internal/database/databasetest"
	"tasks-api/internal/models"
)

var (
	adminID = databasetest.Admin.ID
	otherID = databasetest.Other.ID
)

// newTestRepo returns a repository whose clock advances one second per call.
func newTestRepo(t *testing.T) *TaskRepository {
	t.Helper()
	repo := NewTaskRepository(databasetest.New(t), database.SQLite)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	repo.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return repo
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task, err := repo.Create(ctx, adminID, models.CreateTaskInput{Title: "Test task"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Title != "Test task" || task.UserID != adminID || task.Completed || task.Description != "" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.CreatedAt != task.UpdatedAt || task.CreatedAt != "2025-01-01T00:00:01.000Z" {
		t.Errorf("timestamps = %s / %s", task.CreatedAt, task.UpdatedAt)
	}

	stored, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored != task {
		t.Errorf("stored = %+v, want %+v", stored, task)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.FindByID(context.Background(), "non-existent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindAllByUserIDScopesToUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, repo, adminID, "User 1 task")
	mustCreate(t, repo, otherID, "User 2 task")

	tasks, total, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(tasks) != 1 || tasks[0].Title != "User 1 task" {
		t.Fatalf("got total=%d tasks=%+v", total, tasks)
	}
}

func TestFindAllByUserIDEmpty(t *testing.T) {
	repo := newTestRepo(t)
	tasks, total, err := repo.FindAllByUserID(context.Background(), adminID, models.ListTasksQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if tasks == nil || len(tasks) != 0 || total != 0 {
		t.Fatalf("got total=%d tasks=%v", total, tasks)
	}
}

func TestFindAllByUserIDPaginates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		mustCreate(t, repo, adminID, fmt.Sprintf("Task %d", i))
	}

	page1, total, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{Page: 1, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(page1) != 5 || total != 15 {
		t.Fatalf("page1 len=%d total=%d", len(page1), total)
	}
	if page1[0].Title != "Task 14" {
		t.Errorf("newest first: got %q", page1[0].Title)
	}

	page3, _, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{Page: 3, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(page3) != 5 || page3[4].Title != "Task 0" {
		t.Fatalf("page3 = %+v", page3)
	}

	page4, total, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{Page: 4, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(page4) != 0 || total != 15 {
		t.Fatalf("page4 len=%d total=%d", len(page4), total)
	}
}

func TestFindAllByUserIDFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	done := mustCreate(t, repo, adminID, "Done")            // :01
	mustCreate(t, repo, adminID, "Not done")                // :02
	mustCreate(t, repo, adminID, "Later")                   // :03
	otherDone := mustCreate(t, repo, otherID, "Other done") // :04
	if _, err := repo.Update(ctx, done.ID, adminID, models.UpdateTaskInput{Completed: ptr(true)}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Update(ctx, otherDone.ID, otherID, models.UpdateTaskInput{Completed: ptr(true)}); err != nil {
		t.Fatal(err)
	}

	tasks, total, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{Completed: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || tasks[0].Title != "Done" {
		t.Fatalf("completed filter: total=%d tasks=%+v", total, tasks)
	}

	tasks, total, err = repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{Completed: ptr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("not completed filter: total=%d tasks=%+v", total, tasks)
	}

	from := time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC)
	to := time.Date(2025, 1, 1, 1, 0, 3, 0, time.FixedZone("CET", 3600))
	tasks, total, err = repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{From: &from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || tasks[0].Title != "Later" || tasks[1].Title != "Not done" {
		t.Fatalf("range filter (inclusive): total=%d tasks=%+v", total, tasks)
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	task := mustCreate(t, repo, adminID, "Original")

	updated, err := repo.Update(ctx, task.ID, adminID, models.UpdateTaskInput{Title: ptr("Updated"), Completed: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Updated" || !updated.Completed || updated.Description != task.Description {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if updated.UpdatedAt <= task.UpdatedAt || updated.CreatedAt != task.CreatedAt {
		t.Errorf("timestamps not refreshed correctly: %+v", updated)
	}
}

func TestUpdateNotFoundOrNotOwned(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	task := mustCreate(t, repo, adminID, "Mine")

	if _, err := repo.Update(ctx, "non-existent", adminID, models.UpdateTaskInput{Title: ptr("X")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id: err = %v", err)
	}
	if _, err := repo.Update(ctx, task.ID, otherID, models.UpdateTaskInput{Title: ptr("X")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other owner: err = %v", err)
	}
	stored, _ := repo.FindByID(ctx, task.ID)
	if stored.Title != "Mine" {
		t.Fatalf("task modified by non-owner: %+v", stored)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	task := mustCreate(t, repo, adminID, "Delete me")

	if ok, err := repo.Delete(ctx, task.ID, otherID); err != nil || ok {
		t.Fatalf("delete by other owner: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.Delete(ctx, task.ID, adminID); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, err := repo.FindByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task still present: %v", err)
	}
	if ok, err := repo.Delete(ctx, task.ID, adminID); err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
}

func TestCreateMany(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tasks, err := repo.CreateMany(ctx, adminID, []models.CreateTaskInput{
		{Title: "Task 1"}, {Title: "Task 2"}, {Title: "Task 3", Description: "third"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 3 || tasks[2].Description != "third" {
		t.Fatalf("tasks = %+v", tasks)
	}
	_, total, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
}

func TestCreateManyIsAllOrNothing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, repo, adminID, "Existing")

	_, err := repo.CreateMany(ctx, adminID, []models.CreateTaskInput{
		{Title: "Task 1"},
		{Title: strings.Repeat("x", 256)}, // violates the title CHECK constraint
		{Title: "Task 3"},
	})
	if err == nil {
		t.Fatal("expected mid-batch failure")
	}

	_, total, err := repo.FindAllByUserID(ctx, adminID, models.ListTasksQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("total = %d after failed batch, want 1", total)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct{ page, limit, wantPage, wantLimit int }{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, 500, 2, 100},
		{4, 100, 4, 100},
	}
	for _, c := range cases {
		p, l := NormalizePage(c.page, c.limit)
		if p != c.wantPage || l != c.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = %d, %d", c.page, c.limit, p, l)
		}
	}
}

func TestFindByUsername(t *testing.T) {
	users := NewUserRepository(databasetest.New(t), database.SQLite)
	ctx := context.Background()

	u, err := users.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != adminID || u.PasswordHash == "" {
		t.Errorf("unexpected user: %+v", u)
	}
	if _, err := users.FindByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func mustCreate(t *testing.T, repo *TaskRepository, userID, title string) models.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), userID, models.CreateTaskInput{Title: title})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return task
}
