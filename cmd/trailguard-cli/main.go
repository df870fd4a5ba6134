package main

import (
	"context"
	"os"

	"github.com/TrailGuard-io/mobile-app/internal/cli/command"
)

func main() {
	app := command.App()
	err := app.RunContext(context.Background(), os.Args)
	os.Exit(command.Report(app, err))
}
