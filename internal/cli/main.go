package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Main runs the command and returns the process exit code
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, exit, err := Parse(args, stderr)
	if exit {
		return 0
	}
	if err != nil {
		return report(stderr, err)
	}

	logger, cleanup, err := NewLogger(opts.LogLevel, opts.LogFormat, opts.LogFile, stderr)
	if err != nil {
		return report(stderr, err)
	}
	defer cleanup()

	cfg, err := LoadConfig(opts)
	if err != nil {
		return report(stderr, err)
	}

	if err := Run(ctx, opts, cfg, stdout, logger); err != nil {
		return report(stderr, err)
	}

	return 0
}

func report(w io.Writer, err error) int {
	fmt.Fprintln(w, "hookbind:", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}
