package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MJE43/stake-pf-verify/internal/engine"
	"github.com/MJE43/stake-pf-verify/internal/replay"
)

type textPrinter struct {
	w io.Writer
}

// lines collects output and keeps the first write error.
type lines struct {
	w   io.Writer
	err error
}

func (l *lines) printf(format string, args ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format, args...)
}

func (p *textPrinter) banner(l *lines, clientSeed, published string) {
	l.printf("=== Provably-Fair Verifier ===\n")
	l.printf("Using client seed: %s\n", clientSeed)
	l.printf("Using published commitment: %s\n\n", published)
}

func (p *textPrinter) MissingServerSeed(in Inputs) error {
	l := &lines{w: p.w}
	p.banner(l, in.ClientSeed, in.PublishedCommitment)
	l.printf("No server seed provided. To verify a round, run with --server \"REVEALED_SERVER_SEED\"\n")
	l.printf("Example:\n")
	l.printf("  pf-verify --server \"your-server-seed-here\" --nonce %d\n", in.Nonce)
	return l.err
}

func (p *textPrinter) verification(l *lines, res engine.Result) {
	p.banner(l, res.ClientSeed, res.Published)
	l.printf("Published commitment: %s\n", res.Published)
	l.printf("Computed commitment:  %s\n", res.Computed)

	if !res.CommitmentMatch {
		l.printf("\n>>> VERIFICATION FAILED: The provided server_seed does NOT match the published commitment.\n")
		return
	}

	l.printf("\nCommitment verified: server_seed matches the published commitment.\n")
	l.printf("Deterministic roll for client_seed='%s', nonce=%d -> %s\n",
		res.ClientSeed, res.Nonce, engine.FormatRoll(*res.Roll))
}

func (p *textPrinter) verdict(l *lines, res engine.Result) {
	if res.Valid {
		l.printf("\nVerification completed successfully.\n")
		return
	}
	l.printf("\nVerification FAILED. Do not trust the result if server seed and published commitment mismatch.\n")
}

func (p *textPrinter) Verification(_ string, res engine.Result) error {
	l := &lines{w: p.w}
	p.verification(l, res)
	p.verdict(l, res)
	return l.err
}

func (p *textPrinter) Replay(_ string, res engine.Result, rep *replay.Result) error {
	l := &lines{w: p.w}
	p.verification(l, res)
	if !res.Valid || rep == nil {
		p.verdict(l, res)
		return l.err
	}

	req := rep.Echo
	l.printf("\nReplay of nonces %d..%d", req.NonceStart, req.NonceEnd)
	switch req.TargetOp {
	case replay.OpAll:
	case replay.OpBetween, replay.OpOutside:
		l.printf(" where roll %s %s..%s", req.TargetOp, req.TargetVal, req.TargetVal2)
	default:
		l.printf(" where roll %s %s", req.TargetOp, req.TargetVal)
	}
	l.printf(":\n")

	if l.err == nil {
		tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		_, l.err = fmt.Fprintln(tw, "nonce\troll")
		for _, h := range rep.Hits {
			if l.err != nil {
				break
			}
			_, l.err = fmt.Fprintf(tw, "%d\t%s\n", h.Nonce, engine.FormatRoll(h.Roll))
		}
		if l.err == nil {
			l.err = tw.Flush()
		}
	}

	s := rep.Summary
	l.printf("\nEvaluated %d nonces, %d hits", s.TotalEvaluated, s.HitsFound)
	if s.TotalEvaluated > 0 {
		l.printf(" (min %s, max %s, mean %s)", engine.FormatRoll(s.Min), engine.FormatRoll(s.Max), s.Mean.StringFixed(4))
	}
	l.printf(".\n")
	if s.LimitReached {
		l.printf("Stopped early: hit limit %d reached.\n", req.Limit)
	}
	if s.Cancelled {
		l.printf("Stopped early: replay cancelled.\n")
		if s.TotalEvaluated == 0 {
			l.printf("\nCommitment verified, but the replay is incomplete: no rolls were evaluated.\n")
		} else {
			l.printf("\nCommitment verified, but the replay is incomplete: rolls after nonce %d were not evaluated.\n",
				req.NonceStart+s.TotalEvaluated-1)
		}
		return l.err
	}

	p.verdict(l, res)
	return l.err
}

func (p *textPrinter) Commitment(c string) error {
	_, err := fmt.Fprintln(p.w, c)
	return err
}

