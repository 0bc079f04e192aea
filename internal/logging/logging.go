package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/m-mizutani/clog"
)

var (
	mu     sync.Mutex
	logger = slog.Default()
)

// Default returns the process logger.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Configure builds the process logger from the CLI flags and installs it as
// both the package and slog default. Format "console" uses a clog handler,
// "json" the stdlib JSON handler.
func Configure(level, format string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}

	lv, err := parseLevel(level)
	if err != nil {
		return err
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(lv),
			clog.WithColor(true),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})
	default:
		return fmt.Errorf("logging: unknown format %q", format)
	}

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", level)
	}
}
