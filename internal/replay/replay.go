// Package replay recomputes every roll of a verified seed pair across a
// nonce range.
package replay

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/MJE43/stake-pf-verify/internal/engine"
)

// MaxRange caps the number of nonces a single replay may cover.
const MaxRange = 1_000_000

// Request represents a replay over [NonceStart, NonceEnd].
type Request struct {
	Seeds      engine.Seeds
	NonceStart uint64
	NonceEnd   uint64
	TargetOp   TargetOp
	TargetVal  decimal.Decimal
	TargetVal2 decimal.Decimal // for "between" and "outside"
	Limit      int             // 0 means no limit
}

// Hit represents a single matching roll
type Hit struct {
	Nonce uint64
	Roll  engine.Roll
}

// Summary contains aggregate statistics over every evaluated nonce, matched
// or not.
type Summary struct {
	TotalEvaluated uint64
	HitsFound      int
	Min            decimal.Decimal
	Max            decimal.Decimal
	Mean           decimal.Decimal
	Cancelled      bool
	LimitReached   bool
}

// Result contains the complete replay output
type Result struct {
	Hits    []Hit
	Summary Summary
	Echo    Request
}

// Validate checks the range and target of a request.
func (r Request) Validate() error {
	if r.NonceStart > r.NonceEnd {
		return errors.Wrapf(ErrInvalidRange, "start %d after end %d", r.NonceStart, r.NonceEnd)
	}
	if r.NonceEnd-r.NonceStart >= MaxRange {
		return errors.Wrapf(ErrInvalidRange, "span %d exceeds %d nonces", r.NonceEnd-r.NonceStart+1, MaxRange)
	}
	if r.Limit < 0 {
		return errors.Wrapf(ErrInvalidRange, "negative limit %d", r.Limit)
	}
	return nil
}

// Replay walks the nonce range in order. Cancellation is checked between
// nonces; a cancelled replay returns what it has so far with
// Summary.Cancelled set.
func Replay(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	evaluator, err := NewTargetEvaluator(req.TargetOp, req.TargetVal, req.TargetVal2)
	if err != nil {
		return nil, err
	}

	res := &Result{Echo: req}
	sum := decimal.Zero

	for nonce := req.NonceStart; ; nonce++ {
		if err := ctx.Err(); err != nil {
			res.Summary.Cancelled = true
			break
		}

		roll := engine.ComputeRoll(req.Seeds.Server, req.Seeds.Client, nonce)
		res.Summary.TotalEvaluated++
		sum = sum.Add(roll)
		if res.Summary.TotalEvaluated == 1 {
			res.Summary.Min, res.Summary.Max = roll, roll
		} else {
			res.Summary.Min = decimal.Min(res.Summary.Min, roll)
			res.Summary.Max = decimal.Max(res.Summary.Max, roll)
		}

		if evaluator.Matches(roll) {
			res.Hits = append(res.Hits, Hit{Nonce: nonce, Roll: roll})
			if req.Limit > 0 && len(res.Hits) >= req.Limit {
				res.Summary.LimitReached = true
				break
			}
		}

		// nonce == NonceEnd may be MaxUint64; stop before the increment wraps.
		if nonce == req.NonceEnd {
			break
		}
	}

	res.Summary.HitsFound = len(res.Hits)
	if res.Summary.TotalEvaluated > 0 {
		n := decimal.NewFromInt(int64(res.Summary.TotalEvaluated))
		res.Summary.Mean = sum.DivRound(n, 4)
	}
	return res, nil
}
