package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	"push-to-memory/config"
	"push-to-memory/config/postgre"
	"push-to-memory/migrations"
)

// Runs goose against postgres.dsn with the embedded migrations.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/migrate/main.go <up|down|status|reset|version>")
		os.Exit(1)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Postgres.DSN == "" {
		fmt.Println("POSTGRES_DSN is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgre.Connect(ctx, postgre.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer postgre.Disconnect(ctx, db)

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		fmt.Printf("Failed to set dialect: %v\n", err)
		os.Exit(1)
	}

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		fmt.Printf("goose %s: %v\n", command, err)
		os.Exit(1)
	}
}
