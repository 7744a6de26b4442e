package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"yasen/internal/config"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "yasen",
		Usage:   "Discord bot for World of Warships clans",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory holding the JSON documents and bundled assets",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return err
	}
	if dir := cmd.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	closeLog := InitLogger(cfg.Log)
	defer closeLog()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("Application shutdown error", "error", err)
		}
	}()

	if err := app.Run(); err != nil {
		slog.Error("Failed to start application", "error", err)
		return err
	}

	WaitForShutdown(ctx)
	return nil
}
