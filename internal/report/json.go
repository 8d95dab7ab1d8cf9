package report

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/MJE43/stake-pf-verify/internal/engine"
	"github.com/MJE43/stake-pf-verify/internal/replay"
)

type jsonPrinter struct {
	w io.Writer
}

func (p *jsonPrinter) flush(e *jx.Encoder) error {
	b := append(e.Bytes(), '\n')
	if _, err := p.w.Write(b); err != nil {
		return errors.Wrap(err, "write json")
	}
	return nil
}

func (p *jsonPrinter) MissingServerSeed(in Inputs) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("server_seed_provided", func(e *jx.Encoder) { e.Bool(false) })
		e.Field("client_seed", func(e *jx.Encoder) { e.Str(in.ClientSeed) })
		e.Field("published_commitment", func(e *jx.Encoder) { e.Str(in.PublishedCommitment) })
		e.Field("nonce", func(e *jx.Encoder) { e.UInt64(in.Nonce) })
	})
	return p.flush(&e)
}

func encodeResultFields(e *jx.Encoder, id string, res engine.Result) {
	e.Field("id", func(e *jx.Encoder) { e.Str(id) })
	e.Field("valid", func(e *jx.Encoder) { e.Bool(res.Valid) })
	e.Field("commitment_match", func(e *jx.Encoder) { e.Bool(res.CommitmentMatch) })
	e.Field("published_commitment", func(e *jx.Encoder) { e.Str(res.Published) })
	e.Field("computed_commitment", func(e *jx.Encoder) { e.Str(res.Computed) })
	e.Field("client_seed", func(e *jx.Encoder) { e.Str(res.ClientSeed) })
	e.Field("nonce", func(e *jx.Encoder) { e.UInt64(res.Nonce) })
	if res.Roll != nil {
		e.Field("roll", func(e *jx.Encoder) { e.Str(engine.FormatRoll(*res.Roll)) })
		e.Field("hmac", func(e *jx.Encoder) { e.Str(res.Digest) })
	}
}

func (p *jsonPrinter) Verification(id string, res engine.Result) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		encodeResultFields(e, id, res)
	})
	return p.flush(&e)
}

func (p *jsonPrinter) Replay(id string, res engine.Result, rep *replay.Result) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		encodeResultFields(e, id, res)
		if rep == nil {
			return
		}
		e.Field("hits", func(e *jx.Encoder) {
			e.ArrStart()
			for _, h := range rep.Hits {
				e.Obj(func(e *jx.Encoder) {
					e.Field("nonce", func(e *jx.Encoder) { e.UInt64(h.Nonce) })
					e.Field("roll", func(e *jx.Encoder) { e.Str(engine.FormatRoll(h.Roll)) })
				})
			}
			e.ArrEnd()
		})
		s := rep.Summary
		e.Field("summary", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("total_evaluated", func(e *jx.Encoder) { e.UInt64(s.TotalEvaluated) })
				e.Field("hits_found", func(e *jx.Encoder) { e.Int(s.HitsFound) })
				if s.TotalEvaluated > 0 {
					e.Field("min", func(e *jx.Encoder) { e.Str(engine.FormatRoll(s.Min)) })
					e.Field("max", func(e *jx.Encoder) { e.Str(engine.FormatRoll(s.Max)) })
					e.Field("mean", func(e *jx.Encoder) { e.Str(s.Mean.StringFixed(4)) })
				}
				e.Field("limit_reached", func(e *jx.Encoder) { e.Bool(s.LimitReached) })
				e.Field("cancelled", func(e *jx.Encoder) { e.Bool(s.Cancelled) })
			})
		})
	})
	return p.flush(&e)
}

func (p *jsonPrinter) Commitment(c string) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("commitment", func(e *jx.Encoder) { e.Str(c) })
	})
	return p.flush(&e)
}
