package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type WaitForDBCommand struct {
	Attempts int
	Interval time.Duration
}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")
	url := dbURL()

	var err error
	for i := 0; i < c.Attempts; i++ {
		if err = ping(url); err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, c.Attempts, err)
		time.Sleep(c.Interval)
	}
	return fmt.Errorf("database failed to become ready after %d attempts: %w", c.Attempts, err)
}

func ping(url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}
