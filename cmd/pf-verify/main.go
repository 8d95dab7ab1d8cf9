// Command pf-verify audits provably-fair dice rounds: it checks a revealed
// server seed against the commitment published before the round and
// recomputes the roll.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"

	"github.com/MJE43/stake-pf-verify/internal/logger"
)

const (
	exitOK       = 0
	exitFailed   = 1
	exitUsage    = 2
	exitInternal = 3
	exitPartial  = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	logger.Sync()

	code := exitCode(err)
	if code == exitInternal || code == exitUsage {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == exitUsage {
			fmt.Fprintln(os.Stderr, "Run 'pf-verify --help' for usage.")
		}
	}
	os.Exit(code)
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrVerificationFailed):
		return exitFailed
	case errors.Is(err, ErrReplayCancelled):
		return exitPartial
	case errors.As(err, &usage):
		return exitUsage
	default:
		return exitInternal
	}
}
