package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/filepickgo/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("filepickgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
FilePickGo - A registry of file-acquisition sources for attachment pickers.

Usage:
  filepickgo [options] [MIMETYPE ...]

Arguments:
  MIMETYPE
    Content types to filter the source list by (e.g. image/jpeg).
    With no mimetypes given, every enabled source is listed unfiltered.

Options:
`)
		flagSet.PrintDefaults()
	}

	mimetypesFlag := flagSet.String("mimetypes", "", "Comma-separated content types to filter by.")
	siteFlag := flagSet.String("site", "default", "Site session to enable sources for.")
	modulesPathFlag := flagSet.String("modules-path", "modules", "Path to the directory containing source manifests.")
	eventsURLFlag := flagSet.String("events-url", "", "socket.io hub URL publishing session events. Empty disables.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Mimetypes come from the flag and/or positional arguments. A nil
	// slice means the picker query runs unfiltered.
	var mimetypes []string
	if *mimetypesFlag != "" {
		for _, m := range strings.Split(*mimetypesFlag, ",") {
			if m = strings.TrimSpace(m); m != "" {
				mimetypes = append(mimetypes, m)
			}
		}
	}
	mimetypes = append(mimetypes, flagSet.Args()...)
	slog.Debug("Mimetype filter determined.", "mimetypes", mimetypes)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModulesPath:     *modulesPathFlag,
		Site:            *siteFlag,
		Mimetypes:       mimetypes,
		EventsURL:       *eventsURLFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
