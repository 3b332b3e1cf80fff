// Seed adds demo tasks for a seeded user. Run from project root: go run ./scripts/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tasks-api/internal/config"
	"tasks-api/internal/database"
	"tasks-api/internal/models"
	"tasks-api/internal/repository"
)

func main() {
	total := flag.Int("n", 10_000, "number of tasks to insert")
	batchSize := flag.Int("batch", 500, "tasks per transaction")
	username := flag.String("user", "admin", "seeded user that owns the tasks")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Get()
	db, dialect, err := database.DB(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DB connection failed:", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.MigrateOrCreateSchema(ctx, db, dialect, cfg.BcryptCost); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	user, err := repository.NewUserRepository(db, dialect).FindByUsername(ctx, *username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "User %q not found: %v\n", *username, err)
		os.Exit(1)
	}

	tasks := repository.NewTaskRepository(db, dialect)
	start := time.Now()
	for done := 0; done < *total; {
		n := min(*batchSize, *total-done)
		inputs := make([]models.CreateTaskInput, 0, n)
		for i := 1; i <= n; i++ {
			inputs = append(inputs, models.CreateTaskInput{
				Title:       fmt.Sprintf("Task %d", done+i),
				Description: fmt.Sprintf("Description for task %d", done+i),
			})
		}
		if _, err := tasks.CreateMany(ctx, user.ID, inputs); err != nil {
			fmt.Fprintln(os.Stderr, "\nInsert failed:", err)
			os.Exit(1)
		}
		done += n
		fmt.Printf("\rInserted %d / %d", done, *total)
	}

	fmt.Printf("\nDone: %d tasks for %s in %v\n", *total, user.Username, time.Since(start))
}
