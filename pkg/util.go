package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLog builds a logger that appends to dest. The TUI owns the terminal, so
// nothing is written to stdout or stderr.
func InitLog(dest string, level string, name string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("log: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{dest}
	cfg.ErrorOutputPaths = []string{dest}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("log: open %s: %w", dest, err)
	}

	return logger.Named(name), nil
}
