package engine

import "github.com/shopspring/decimal"

// Seeds is the seed pair of a round.
type Seeds struct {
	Server string // raw UTF-8 bytes, never hex-decoded
	Client string
}

// Roll is a dice outcome in [0.00, 99.99] with exactly two fractional digits.
type Roll = decimal.Decimal

// Result is the outcome of a single round verification.
type Result struct {
	Published       string
	Computed        string
	CommitmentMatch bool
	Valid           bool
	ClientSeed      string
	Nonce           uint64

	// Roll and Digest (hex HMAC) are only set when the commitment matches.
	Roll   *Roll
	Digest string
}

// HasOutcome reports whether the result carries a roll.
func (r Result) HasOutcome() bool {
	return r.Roll != nil
}
