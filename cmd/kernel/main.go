package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/cmd/kernel/commands"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	app := &commands.AppContext{Ctx: context.Background()}
	if err := commands.RootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
