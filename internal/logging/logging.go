package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once sync.Once
	base *slog.Logger
)

// root builds the global JSON logger exactly once, writing to both
// stdout and a size-rotated file. Every read of base goes through the
// once so concurrent first calls are safe.
func root(filePath string) *slog.Logger {
	once.Do(func() {
		_ = os.MkdirAll(filepath.Dir(filePath), 0755)

		rot := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		mw := io.MultiWriter(os.Stdout, rot)

		h := slog.NewJSONHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})
		base = slog.New(h)
	})
	return base
}

// Init configures the global logger with the given file path and
// returns a logger tagged with the component. The path only takes
// effect on the first call.
func Init(component, filePath string) *slog.Logger {
	return root(filePath).With("component", component)
}

// New returns a component-tagged logger, initializing the global one
// with defaults if Init has not run yet.
func New(component string) *slog.Logger {
	return root("./logs/app.log").With("component", component)
}
