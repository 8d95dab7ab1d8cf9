package replay

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// TargetOp represents comparison operations for filtering rolls
type TargetOp string

const (
	OpAll          TargetOp = ""
	OpEqual        TargetOp = "eq"
	OpGreater      TargetOp = "gt"
	OpGreaterEqual TargetOp = "ge"
	OpLess         TargetOp = "lt"
	OpLessEqual    TargetOp = "le"
	OpBetween      TargetOp = "between"
	OpOutside      TargetOp = "outside"
)

// Ops lists every accepted operator, in help-text order.
var Ops = []TargetOp{OpEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpBetween, OpOutside}

// TargetEvaluator matches rolls against a target condition. Rolls are exact
// two-decimal values, so no tolerance is applied.
type TargetEvaluator struct {
	op   TargetOp
	val1 decimal.Decimal
	val2 decimal.Decimal // for "between" and "outside"
}

// NewTargetEvaluator validates the operator and bounds.
func NewTargetEvaluator(op TargetOp, val1, val2 decimal.Decimal) (*TargetEvaluator, error) {
	switch op {
	case OpAll, OpEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
	case OpBetween, OpOutside:
		if val2.LessThan(val1) {
			return nil, errors.Wrapf(ErrInvalidTarget, "%s needs target2 >= target (%s < %s)", op, val2, val1)
		}
	default:
		return nil, errors.Wrapf(ErrInvalidTarget, "unknown operator %q", string(op))
	}

	return &TargetEvaluator{op: op, val1: val1, val2: val2}, nil
}

// Matches checks if a roll matches the target criteria
func (te *TargetEvaluator) Matches(roll decimal.Decimal) bool {
	switch te.op {
	case OpAll:
		return true
	case OpEqual:
		return roll.Equal(te.val1)
	case OpGreater:
		return roll.GreaterThan(te.val1)
	case OpGreaterEqual:
		return roll.GreaterThanOrEqual(te.val1)
	case OpLess:
		return roll.LessThan(te.val1)
	case OpLessEqual:
		return roll.LessThanOrEqual(te.val1)
	case OpBetween:
		return roll.GreaterThanOrEqual(te.val1) && roll.LessThanOrEqual(te.val2)
	case OpOutside:
		return roll.LessThan(te.val1) || roll.GreaterThan(te.val2)
	default:
		return false
	}
}
