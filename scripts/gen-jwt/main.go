// gen-jwt prints a bearer token for a seeded user, for curl and load tests.
// Run from project root: go run ./scripts/gen-jwt -user admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tasks-api/internal/config"
	"tasks-api/internal/database"
	"tasks-api/internal/models"
	"tasks-api/internal/repository"
	"tasks-api/internal/service"
)

func main() {
	username := flag.String("user", "admin", "username to issue the token for")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Get()

	p := models.AuthPayload{Username: *username}
	for _, u := range database.SeedUsers {
		if u.Username == *username {
			p.UserID = u.ID
		}
	}
	// Not a seeded account: look it up in the configured database.
	if p.UserID == "" {
		db, dialect, err := database.DB(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "DB connection failed:", err)
			os.Exit(1)
		}
		defer database.Close()
		user, err := repository.NewUserRepository(db, dialect).FindByUsername(ctx, *username)
		if err != nil {
			fmt.Fprintf(os.Stderr, "User %q not found: %v\n", *username, err)
			os.Exit(1)
		}
		p.UserID = user.ID
	}

	token, err := service.NewAuthService(nil, cfg.JWTSecret, cfg.TokenTTL).IssueToken(p)
	if err != nil {
		panic(err)
	}
	fmt.Println(token)
}
