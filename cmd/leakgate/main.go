// Leakgate is a git pre-commit secret scanner.
//
// Installed as a pre-commit hook it scans the staged files on every
// commit and blocks the commit when content shaped like a credential
// is about to leave the machine. Critical findings block, warnings
// inform, and git's standard escape hatch (git commit --no-verify)
// always applies.
//
//	leakgate install     # once per clone
//	git commit           # the hook scans the staged set
//	leakgate audit       # sweep a whole tree, not just the staged set
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// exitEnvironment is the exit code for runs that never produced a
// verdict: not a repository, unreadable config, broken rules file.
// Hook managers treat it the same as 1, but scripts can tell the
// difference between "blocked" and "could not check".
const exitEnvironment = 2

// exitError pins a specific process exit code to an error. An empty
// message means everything the user needed was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e *exitError) Unwrap() error { return e.err }

// errBlocked is returned after a report with critical findings has
// been rendered. The report is the message; the code is the contract.
var errBlocked = &exitError{code: 1}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitEnvironment
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(os.Stderr, "leakgate:", msg)
	}
	stop()
	os.Exit(exitCode(err))
}
