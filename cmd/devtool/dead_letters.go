package main

import (
	"os"
	"sort"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/event"
)

// DeadLettersCommand summarizes the events the publisher gave up on
type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "dead-letters"
}

func (c *DeadLettersCommand) Description() string {
	return "Summarize the event dead-letter file by event type"
}

func (c *DeadLettersCommand) Run(args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg := &config.Config{}
		if err := config.ParseEnv(cfg); err != nil {
			return err
		}
		path = cfg.DeadLetterPath
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		PrintSuccess("No dead letters at %s", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := event.ReadDeadLetters(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintSuccess("No dead letters at %s", path)
		return nil
	}

	byType := make(map[event.Type]int)
	for _, e := range entries {
		byType[e.Event.Type]++
	}
	types := make([]event.Type, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	PrintHeader("Dead letters in " + path)
	for _, t := range types {
		PrintInfo("%-32s %d", t, byType[t])
	}
	last := entries[len(entries)-1]
	PrintWarning("%d total, last at %s: %s", len(entries), last.Timestamp.Format("2006-01-02 15:04:05"), last.LastError)
	return nil
}
