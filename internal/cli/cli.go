package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/taglib/internal/app"
	"github.com/vk/taglib/internal/engine"
	"github.com/vk/taglib/internal/export"
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

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("taglib", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
taglib - Aggregates tag definitions from data bundles and resolves tag references.

Usage:
  taglib [options] [BUNDLES_PATH]

Arguments:
  BUNDLES_PATH
    A .jar/.zip archive, an unpacked bundle directory (containing data/),
    or a directory that holds bundles.

Options:
`)
		flagSet.PrintDefaults()
	}

	var bootstrapPaths stringList
	bundlesFlag := flagSet.String("bundles", "", "Path to the bundle archive or directory.")
	bFlag := flagSet.String("b", "", "Path to the bundle archive or directory (shorthand).")
	flagSet.Var(&bootstrapPaths, "bootstrap", "Path to a bootstrap .hcl file or directory. Repeatable.")
	formatFlag := flagSet.String("format", "json", "Export format. Options: 'json', 'yaml' or 'hcl'.")
	outputFlag := flagSet.String("output", "", "Write the export to this file instead of stdout.")
	oFlag := flagSet.String("o", "", "Write the export to this file instead of stdout (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", engine.DefaultWorkers, "Number of bundles scanned concurrently.")
	listenPortFlag := flagSet.Int("listen-port", 0, "Serve tag queries on this port after the pass. 0 is disabled.")
	traceFileFlag := flagSet.String("trace-file", "", "Write OpenTelemetry spans to this file.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := firstNonEmpty(*bundlesFlag, *bFlag)
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Bundles path determined.", "path", path)

	if path == "" {
		slog.Debug("No bundles path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'json', 'yaml' or 'hcl'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		BundlesPath:    path,
		BootstrapPaths: bootstrapPaths,
		Format:         format,
		OutputPath:     firstNonEmpty(*outputFlag, *oFlag),
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		Workers:        *workersFlag,
		ListenPort:     *listenPortFlag,
		TraceFile:      *traceFileFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
