// Command devtool bundles operator chores: migrations, readiness checks and
// content file checks.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := defaultRegistry()
	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		if alt := registry.suggest(os.Args[1]); len(alt) > 0 {
			PrintInfo("Did you mean: %s", strings.Join(alt, ", "))
		}
		registry.PrintHelp()
		os.Exit(1)
	}
	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}

func defaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&WaitForDBCommand{Attempts: 30, Interval: 2 * time.Second})
	r.Register(&HealthCheckCommand{})
	r.Register(&ValidateContentCommand{})
	r.Register(&DeadLettersCommand{})
	return r
}

func usageError(format string, a ...interface{}) error {
	return fmt.Errorf("usage: "+format, a...)
}
