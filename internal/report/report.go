// Package report renders verification results for humans (text) or tools
// (json). Server seeds never reach the output; only their commitment does.
package report

import (
	"io"

	"github.com/go-faster/errors"

	"github.com/MJE43/stake-pf-verify/internal/config"
	"github.com/MJE43/stake-pf-verify/internal/engine"
	"github.com/MJE43/stake-pf-verify/internal/replay"
)

// Inputs are the public values shown before any verification.
type Inputs struct {
	ClientSeed          string
	PublishedCommitment string
	Nonce               uint64
}

// Printer writes one report per call.
type Printer interface {
	// MissingServerSeed explains how to run a verification.
	MissingServerSeed(in Inputs) error
	Verification(id string, res engine.Result) error
	Replay(id string, res engine.Result, rep *replay.Result) error
	Commitment(c string) error
}

// New returns the printer for format.
func New(format string, w io.Writer) (Printer, error) {
	switch format {
	case config.FormatText:
		return &textPrinter{w: w}, nil
	case config.FormatJSON:
		return &jsonPrinter{w: w}, nil
	default:
		return nil, errors.Errorf("unknown output format %q", format)
	}
}
