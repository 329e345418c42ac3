// Package main provides the entry point for the countdown CLI.
package main

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/mrz1836/countdown/internal/cli"
	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/errors"
	"github.com/mrz1836/countdown/internal/tui"
)

// Set at build time via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // set by ldflags
	commit  = "none"    //nolint:gochecknoglobals // set by ldflags
	date    = "unknown" //nolint:gochecknoglobals // set by ldflags
)

func main() {
	// A missing .env is normal; values already in the environment win.
	_ = godotenv.Load(constants.EnvFileName)

	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err == nil {
		return
	}

	// JSON errors were already written to stdout by the command.
	if !stderrors.Is(err, errors.ErrJSONErrorOutput) {
		tui.NewTTYOutput(os.Stderr).Error(err)
	}
	os.Exit(cli.ExitCodeForError(err))
}
