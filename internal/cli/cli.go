package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lm2s/tuist/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
tuist - A build orchestrator for Xcode-style projects.

Usage:
  tuist install [options] [PROJECT_PATH]
  tuist test [options] [PROJECT_PATH]

Commands:
  install
    Fetch, build, and cache the project's declared external dependencies.
  test
    Run the project's testable schemes through the build tool.

Run 'tuist <command> -h' for command options.
`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if len(args) == 0 {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	switch args[0] {
	case "install":
		return parseInstall(args[1:], output)
	case "test":
		return parseTest(args[1:], output)
	case "-h", "--help", "help":
		fmt.Fprint(output, usageText)
		return nil, true, nil
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q, expected 'install' or 'test'", args[0])}
	}
}

func parseInstall(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("tuist install", flag.ContinueOnError)
	flagSet.SetOutput(output)

	pathFlag := flagSet.String("path", "", "Path to the project directory. Defaults to the current directory.")
	managerFlag := flagSet.String("manager", "", "Install only one manager's dependencies: 'cocoapods', 'carthage', or 'swiftpm'.")
	updateFlag := flagSet.Bool("update", false, "Re-resolve dependencies instead of honoring previously resolved state.")
	logFormatFlag, logLevelFlag := loggingFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat, logLevel, err := validateLogging(*logFormatFlag, *logLevelFlag)
	if err != nil {
		return nil, false, err
	}

	config, cfgErr := app.NewConfig(app.Config{
		Command:     app.CommandInstall,
		ProjectPath: projectPath(*pathFlag, flagSet),
		Manager:     strings.ToLower(*managerFlag),
		Update:      *updateFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if cfgErr != nil {
		return nil, false, &ExitError{Code: 2, Message: cfgErr.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", config.Command)
	return config, false, nil
}

func parseTest(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("tuist test", flag.ContinueOnError)
	flagSet.SetOutput(output)

	pathFlag := flagSet.String("path", "", "Path to the project directory. Defaults to the current directory.")
	schemeFlag := flagSet.String("scheme", "", "Test a single scheme by name. When omitted, all testable schemes run.")
	generateFlag := flagSet.Bool("generate", false, "Generate the project before testing. Requires a configured project generator; the run fails when none is available.")
	configurationFlag := flagSet.String("configuration", "", "Narrow build arguments to a single configuration.")
	logFormatFlag, logLevelFlag := loggingFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat, logLevel, err := validateLogging(*logFormatFlag, *logLevelFlag)
	if err != nil {
		return nil, false, err
	}

	config, cfgErr := app.NewConfig(app.Config{
		Command:       app.CommandTest,
		ProjectPath:   projectPath(*pathFlag, flagSet),
		Scheme:        *schemeFlag,
		Generate:      *generateFlag,
		Configuration: *configurationFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if cfgErr != nil {
		return nil, false, &ExitError{Code: 2, Message: cfgErr.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", config.Command)
	return config, false, nil
}

func loggingFlags(flagSet *flag.FlagSet) (*string, *string) {
	logFormat := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevel := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	return logFormat, logLevel
}

func validateLogging(format, level string) (string, string, error) {
	logFormat := strings.ToLower(format)
	if logFormat != "text" && logFormat != "json" {
		return "", "", &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(level)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return "", "", &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return logFormat, logLevel, nil
}

// projectPath resolves the project path from the -path flag or the first
// positional argument, defaulting to the current directory.
func projectPath(pathFlag string, flagSet *flag.FlagSet) string {
	if pathFlag != "" {
		return pathFlag
	}
	if flagSet.NArg() > 0 {
		return flagSet.Arg(0)
	}
	return "."
}
