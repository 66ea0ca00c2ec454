// Package main provides the uitheme CLI tool for migrating component sources
// to semantic theme tokens.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// errFailed ends a command whose outcome was already reported, with exit 1.
// Returning it instead of exiting lets deferred logger syncs run.
var errFailed = errors.New("run failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := exitCode(rootCmd.ExecuteContext(ctx), os.Stderr)
	stop()
	os.Exit(code)
}

// exitCode maps a command error to the process exit code
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
