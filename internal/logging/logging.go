// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pods-community/pods-cli/pkg/files"
	"github.com/pods-community/pods-cli/pkg/models"
)

// New builds a production logger from settings. Inside a project, logs go
// to the configured file because the terminal UI owns stdout. Outside a
// project only warnings and errors are written, to stderr. verbose forces
// debug level.
func New(settings models.LoggingSettings, verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if settings.Level != "" {
		parsed, err := zapcore.ParseLevel(settings.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
		}
		level = parsed
	}

	config := zap.NewProductionConfig()
	config.Sampling = nil

	if _, err := os.Stat(files.PodsDir); err == nil {
		path := files.LogPath(settings.File)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	} else {
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		if level < zapcore.WarnLevel {
			level = zapcore.WarnLevel
		}
	}

	if verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("pods"), nil
}
