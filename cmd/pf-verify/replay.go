package main

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MJE43/stake-pf-verify/internal/engine"
	"github.com/MJE43/stake-pf-verify/internal/logger"
	"github.com/MJE43/stake-pf-verify/internal/replay"
)

type replayFlags struct {
	from    uint64
	to      uint64
	op      string
	target  string
	target2 string
	limit   int
}

func newReplayCommand(a *app) *cobra.Command {
	f := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Verify the commitment, then recompute every roll in a nonce range",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReplay(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.Uint64Var(&f.from, "from", 0, "first nonce (default: --nonce)")
	fl.Uint64Var(&f.to, "to", 0, "last nonce, inclusive")
	fl.StringVar(&f.op, "op", "", "only show rolls matching: "+opList())
	fl.StringVar(&f.target, "target", "0", "target roll for --op")
	fl.StringVar(&f.target2, "target2", "0", "upper bound for between/outside")
	fl.IntVar(&f.limit, "limit", 0, "stop after this many matching rolls (0 = no limit)")

	return cmd
}

func (f *replayFlags) request(cmd *cobra.Command, seeds engine.Seeds, nonce uint64) (replay.Request, error) {
	if !cmd.Flags().Changed("to") {
		return replay.Request{}, usageErrorf("replay needs --to")
	}

	from := nonce
	if cmd.Flags().Changed("from") {
		from = f.from
	}

	target, err := decimal.NewFromString(f.target)
	if err != nil {
		return replay.Request{}, usageErrorf("--target %q is not a number", f.target)
	}
	target2, err := decimal.NewFromString(f.target2)
	if err != nil {
		return replay.Request{}, usageErrorf("--target2 %q is not a number", f.target2)
	}

	req := replay.Request{
		Seeds:      seeds,
		NonceStart: from,
		NonceEnd:   f.to,
		TargetOp:   replay.TargetOp(f.op),
		TargetVal:  target,
		TargetVal2: target2,
		Limit:      f.limit,
	}
	if err := req.Validate(); err != nil {
		return replay.Request{}, usageError(err)
	}
	if _, err := replay.NewTargetEvaluator(req.TargetOp, req.TargetVal, req.TargetVal2); err != nil {
		return replay.Request{}, usageError(err)
	}
	return req, nil
}

func (a *app) runReplay(cmd *cobra.Command, f *replayFlags) error {
	if a.server == "" {
		return usageErrorf("replay needs --server")
	}

	seeds := engine.Seeds{Server: a.server, Client: a.cfg.Verifier.ClientSeed}
	req, err := f.request(cmd, seeds, a.cfg.Verifier.Nonce)
	if err != nil {
		return err
	}

	p, err := a.printer(cmd)
	if err != nil {
		return err
	}

	id, res := a.verify(cmd)
	if !res.Valid {
		if err := p.Replay(id, res, nil); err != nil {
			return err
		}
		return ErrVerificationFailed
	}

	ctx := logger.WithFields(cmd.Context(), zap.String("verification_id", id))
	rep, err := replay.Replay(ctx, req)
	if err != nil {
		return errors.Wrap(err, "replay")
	}
	logger.Info(ctx, "replay finished",
		zap.Uint64("nonce_start", req.NonceStart),
		zap.Uint64("nonce_end", req.NonceEnd),
		zap.Uint64("evaluated", rep.Summary.TotalEvaluated),
		zap.Int("hits", rep.Summary.HitsFound),
		zap.Bool("cancelled", rep.Summary.Cancelled),
	)

	if err := p.Replay(id, res, rep); err != nil {
		return err
	}
	if rep.Summary.Cancelled {
		logger.Warn(ctx, "replay interrupted before the end of the range",
			zap.Uint64("evaluated", rep.Summary.TotalEvaluated),
		)
		return ErrReplayCancelled
	}
	return nil
}

func opList() string {
	ops := make([]string, len(replay.Ops))
	for i, op := range replay.Ops {
		ops[i] = string(op)
	}
	return strings.Join(ops, ", ")
}
