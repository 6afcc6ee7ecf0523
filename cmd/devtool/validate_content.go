package main

import (
	"context"

	"github.com/osse101/QuestForge_Go/internal/content"
)

type ValidateContentCommand struct{}

func (c *ValidateContentCommand) Name() string {
	return "validate-content"
}

func (c *ValidateContentCommand) Description() string {
	return "Check a content tables file against the schema and game rules"
}

func (c *ValidateContentCommand) Run(args []string) error {
	if len(args) < 1 {
		return usageError("validate-content <file.json>")
	}

	tables, err := (&content.FileSource{Path: args[0]}).Fetch(context.Background())
	if err != nil {
		return err
	}
	if err := content.Validate(tables); err != nil {
		return err
	}

	PrintSuccess("%s is valid (version %s, %d missions, %d dungeons)",
		args[0], tables.Version, len(tables.Missions), len(tables.Dungeons))
	return nil
}
