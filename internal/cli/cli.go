package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/mayowa/hookbind"
)

// ExitError is an error that carries the process exit code
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Options are the parsed command-line arguments
type Options struct {
	Paths      []string
	ConfigFile string
	EnvFile    string
	Overrides  hookbind.Config
	Write      bool
	List       bool
	Workers    int
	LogLevel   string
	LogFormat  string
	LogFile    string
}

// Parse processes command-line arguments. The boolean result is true when
// the program should exit cleanly (-h).
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("hookbind", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
hookbind - rewrites v-ehb="expr" markers of Vue components into
v-bind="expr.bindProps" v-on="expr.bindEvents".

Usage:
  hookbind [options] PATH...

Arguments:
  PATH
    A .vue file or a directory searched recursively for .vue files.

Options:
`)
		flagSet.PrintDefaults()
	}

	opts := &Options{}
	flagSet.StringVar(&opts.ConfigFile, "config", "", "YAML config file.")
	flagSet.StringVar(&opts.EnvFile, "env", ".env", "dotenv file with HOOKBIND_* variables, ignored if missing.")
	flagSet.StringVar(&opts.Overrides.Prefix, "prefix", "", "Marker attribute (default \"v-ehb\").")
	flagSet.StringVar(&opts.Overrides.BindKey, "bind-key", "", "Member bound with v-bind (default \"bindProps\").")
	flagSet.StringVar(&opts.Overrides.EventKey, "event-key", "", "Member bound with v-on (default \"bindEvents\").")
	flagSet.BoolVar(&opts.Write, "write", false, "Rewrite files in place instead of printing them.")
	flagSet.BoolVar(&opts.List, "list", false, "List the elements carrying the marker instead of rewriting.")
	flagSet.IntVar(&opts.Workers, "workers", 8, "Number of files processed concurrently.")
	flagSet.StringVar(&opts.LogLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "console", "Log output format: 'console' or 'json'.")
	flagSet.StringVar(&opts.LogFile, "log-file", "", "Also write JSON logs to this file, rotated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	opts.Paths = flagSet.Args()
	if len(opts.Paths) == 0 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "no PATH given"}
	}
	if opts.Workers < 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid -workers %d", opts.Workers)}
	}
	if opts.Write && opts.List {
		return nil, false, &ExitError{Code: 2, Message: "-write and -list can't be combined"}
	}

	return opts, false, nil
}
