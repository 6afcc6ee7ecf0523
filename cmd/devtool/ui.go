package main

import (
	"fmt"
	"io"
	"os"
)

type tone string

const (
	toneInfo   tone = "\033[0;34m"
	toneOK     tone = "\033[0;32m"
	toneWarn   tone = "\033[1;33m"
	toneFail   tone = "\033[0;31m"
	toneReset       = "\033[0m"
	envNoColor      = "NO_COLOR"
)

// console is where every status line goes. Errors go to stderr.
var (
	console    io.Writer = os.Stdout
	errConsole io.Writer = os.Stderr
)

// say writes one status line, colored unless NO_COLOR is set (https://no-color.org)
func say(w io.Writer, t tone, marker, format string, a ...interface{}) {
	line := fmt.Sprintf(format, a...)
	if marker != "" {
		line = marker + " " + line
	}
	if _, plain := os.LookupEnv(envNoColor); plain {
		fmt.Fprintln(w, line)
		return
	}
	fmt.Fprintln(w, string(t)+line+toneReset)
}

func PrintInfo(format string, a ...interface{})    { say(console, toneInfo, "i", format, a...) }
func PrintSuccess(format string, a ...interface{}) { say(console, toneOK, "ok", format, a...) }
func PrintWarning(format string, a ...interface{}) { say(console, toneWarn, "!", format, a...) }
func PrintError(format string, a ...interface{})   { say(errConsole, toneFail, "x", format, a...) }

// PrintHeader opens a section with a blank line before it
func PrintHeader(title string) {
	fmt.Fprintln(console)
	say(console, toneWarn, "", "== %s ==", title)
}
