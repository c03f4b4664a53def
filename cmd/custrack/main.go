// Package main provides the entry point for custrack.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yndnr/custrack-go/internal/cli/command"
	"github.com/yndnr/custrack-go/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.Listen(context.Background())
	defer stop()

	app := command.App()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
