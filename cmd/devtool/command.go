package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry maps subcommand names to commands
type Registry struct {
	commands map[string]Command
	out      io.Writer
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command), out: os.Stdout}
}

// Register adds cmd. Registering a name twice is a programming error.
func (r *Registry) Register(cmd Command) {
	if _, dup := r.commands[cmd.Name()]; dup {
		panic(fmt.Sprintf("devtool: command %q registered twice", cmd.Name()))
	}
	r.commands[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands ordered by name
func (r *Registry) List() []Command {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = r.commands[name]
	}
	return cmds
}

// PrintHelp writes usage and an aligned command table
func (r *Registry) PrintHelp() {
	fmt.Fprintln(r.out, "Usage: devtool <command> [args...]")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Commands:")
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}

// suggest returns registered names sharing a prefix with name
func (r *Registry) suggest(name string) []string {
	if len(name) < 2 {
		return nil
	}
	var out []string
	for _, cmd := range r.List() {
		if strings.HasPrefix(cmd.Name(), name[:2]) {
			out = append(out, cmd.Name())
		}
	}
	return out
}
