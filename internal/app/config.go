package app

import (
	"errors"
	"fmt"

	"github.com/lm2s/tuist/internal/manifest"
)

// Command selects which flow an App invocation runs.
type Command string

const (
	CommandInstall Command = "install"
	CommandTest    Command = "test"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command     Command
	ProjectPath string

	// Install options.
	Manager string // empty means all managers
	Update  bool

	// Test options.
	Scheme        string
	Generate      bool
	Configuration string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case CommandInstall, CommandTest:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if cfg.Manager != "" {
		if _, err := manifest.ParseManager(cfg.Manager); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
