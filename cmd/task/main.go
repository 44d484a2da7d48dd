// Package main provides the entry point for the task CLI.
package main

import (
	"context"
	"os"

	"github.com/MikyStar/CLI-Manager-sub000/internal/cli"
	"github.com/MikyStar/CLI-Manager-sub000/internal/signal"
)

// Set via ldflags at build time.
var (
	version = "dev"     //nolint:gochecknoglobals // ldflags target
	commit  = "none"    //nolint:gochecknoglobals // ldflags target
	date    = "unknown" //nolint:gochecknoglobals // ldflags target
)

func main() {
	interrupt := signal.Notify(context.Background())

	err := cli.Execute(interrupt.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	interrupt.Stop()

	if interrupt.Fired() {
		os.Exit(cli.ExitInterrupted)
	}
	os.Exit(cli.ExitCodeForError(err))
}
