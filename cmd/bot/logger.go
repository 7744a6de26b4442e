package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"yasen/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger installs the default slog logger. The returned func closes the
// rotating log file, if any.
func InitLogger(cfg config.LogConfig) func() {
	var out io.Writer = os.Stdout
	closer := func() {}

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: 3,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotating)
		closer = func() { _ = rotating.Close() }
	}

	slog.SetDefault(slog.New(newHandler(out, cfg)))
	return closer
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
