package main

import (
	"context"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return usageError("migrate <up|down|status>")
	}
	switch args[0] {
	case "up", "down", "status":
	default:
		return usageError("migrate <up|down|status>, got %q", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPool(dbURL(), 2, 0, 0)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Database is up to date")
	case "down":
		PrintHeader("Rolling back one migration")
		if err := database.MigrateDown(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Rolled back")
	case "status":
		statuses, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			mark := "pending"
			if st.State == goose.StateApplied {
				mark = "applied " + st.AppliedAt.Format(time.RFC3339)
			}
			PrintInfo("%05d  %-40s %s", st.Source.Version, st.Source.Path, mark)
		}
	}
	return nil
}

// dbURL prefers DB_URL and otherwise builds the string the server would use
func dbURL() string {
	if u := os.Getenv("DB_URL"); u != "" {
		return u
	}
	cfg := &config.Config{}
	if err := config.ParseEnv(cfg); err != nil {
		PrintWarning("Falling back to default database settings: %v", err)
	}
	return cfg.GetDBConnString()
}
