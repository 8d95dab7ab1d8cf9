package main

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
)

// ErrVerificationFailed is returned when the revealed server seed does not
// hash to the published commitment. The report has already been printed.
var ErrVerificationFailed = errors.New("verification failed")

// ErrReplayCancelled is returned when a replay was interrupted after the
// commitment verified. The partial report has already been printed.
var ErrReplayCancelled = errors.New("replay cancelled")

// UsageError reports malformed command-line input. It is raised before any
// verification runs.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %v", e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: errors.Errorf(format, args...)}
}

func usageError(err error) error {
	return &UsageError{Err: err}
}

// usageArgs turns positional argument errors into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
