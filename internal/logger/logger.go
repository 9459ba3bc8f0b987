package logger

import (
	"go.uber.org/zap"

	"github.com/abhisek/kviz/internal/config"
)

// New builds the application logger: JSON for production, human-readable
// console output otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// NewQuiet is New for interactive commands: it only reports warnings and
// above so log lines do not interleave with command output.
func NewQuiet(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zc.Build()
}

// NewFile writes log lines to path instead of the terminal, for the TUI
// which owns the screen.
func NewFile(cfg *config.Config, path string) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}
