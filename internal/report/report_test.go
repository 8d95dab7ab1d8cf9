package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/stake-pf-verify/internal/config"
	"github.com/MJE43/stake-pf-verify/internal/engine"
	"github.com/MJE43/stake-pf-verify/internal/replay"
)

const refCommit = "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090"

func newPrinter(t *testing.T, format string) (Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p, err := New(format, &buf)
	require.NoError(t, err)
	return p, &buf
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("yaml", &bytes.Buffer{})
	require.Error(t, err)
}

func TestTextVerificationMatch(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)
	res := engine.VerifyRound(refCommit, "abc123", "pxfv6pdY0X", 1)

	require.NoError(t, p.Verification("id-1", res))

	want := `=== Provably-Fair Verifier ===
Using client seed: pxfv6pdY0X
Using published commitment: ` + refCommit + `

Published commitment: ` + refCommit + `
Computed commitment:  ` + refCommit + `

Commitment verified: server_seed matches the published commitment.
Deterministic roll for client_seed='pxfv6pdY0X', nonce=1 -> 52.64

Verification completed successfully.
`
	assert.Equal(t, want, buf.String())
	assert.NotContains(t, buf.String(), "abc123")
}

func TestTextVerificationMismatch(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)
	published := strings.Repeat("deadbeef", 8)
	res := engine.VerifyRound(published, "abc123", "pxfv6pdY0X", 1)

	require.NoError(t, p.Verification("id-1", res))

	out := buf.String()
	assert.Contains(t, out, ">>> VERIFICATION FAILED: The provided server_seed does NOT match the published commitment.")
	assert.Contains(t, out, "Verification FAILED. Do not trust the result")
	assert.NotContains(t, out, "Deterministic roll")
}

func TestTextMissingServerSeed(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)

	require.NoError(t, p.MissingServerSeed(Inputs{
		ClientSeed:          config.DefaultClientSeed,
		PublishedCommitment: config.DefaultPublishedCommitment,
		Nonce:               1,
	}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "=== Provably-Fair Verifier ===\n"))
	assert.Contains(t, out, "Using client seed: pxfv6pdY0X\n")
	assert.Contains(t, out, "Using published commitment: "+config.DefaultPublishedCommitment+"\n")
	assert.Contains(t, out, "No server seed provided.")
	assert.Contains(t, out, `pf-verify --server "your-server-seed-here" --nonce 1`)
}

func TestTextReplay(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)
	res := engine.VerifyRound(refCommit, "abc123", "pxfv6pdY0X", 1)
	rep, err := replay.Replay(context.Background(), replay.Request{
		Seeds:      engine.Seeds{Server: "abc123", Client: "pxfv6pdY0X"},
		NonceStart: 1,
		NonceEnd:   10,
		TargetOp:   replay.OpGreater,
		TargetVal:  decimal.NewFromInt(50),
		Limit:      2,
	})
	require.NoError(t, err)

	require.NoError(t, p.Replay("id-1", res, rep))

	out := buf.String()
	assert.Contains(t, out, "Replay of nonces 1..10 where roll gt 50:\n")
	assert.Contains(t, out, "nonce  roll\n1      52.64\n2      56.91\n")
	assert.Contains(t, out, "Evaluated 2 nonces, 2 hits (min 52.64, max 56.91, mean 54.7750).\n")
	assert.Contains(t, out, "Stopped early: hit limit 2 reached.\n")
	assert.True(t, strings.HasSuffix(out, "Verification completed successfully.\n"))
}

func TestTextReplayCancelled(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)
	res := engine.VerifyRound(refCommit, "abc123", "pxfv6pdY0X", 1)
	rep := &replay.Result{
		Hits: []replay.Hit{{Nonce: 1, Roll: decimal.New(5264, -2)}},
		Summary: replay.Summary{
			TotalEvaluated: 3,
			HitsFound:      1,
			Min:            decimal.New(3372, -2),
			Max:            decimal.New(5691, -2),
			Mean:           decimal.RequireFromString("47.7567"),
			Cancelled:      true,
		},
		Echo: replay.Request{NonceStart: 1, NonceEnd: 10},
	}

	require.NoError(t, p.Replay("id-1", res, rep))

	out := buf.String()
	assert.Contains(t, out, "Stopped early: replay cancelled.\n")
	assert.True(t, strings.HasSuffix(out,
		"Commitment verified, but the replay is incomplete: rolls after nonce 3 were not evaluated.\n"))
	assert.NotContains(t, out, "Verification completed successfully.")
}

func TestTextReplayMismatchSkipsTable(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)
	res := engine.VerifyRound(strings.Repeat("deadbeef", 8), "abc123", "pxfv6pdY0X", 1)

	require.NoError(t, p.Replay("id-1", res, nil))
	assert.NotContains(t, buf.String(), "Replay of nonces")
	assert.Contains(t, buf.String(), "Verification FAILED.")
}

func TestTextCommitment(t *testing.T) {
	p, buf := newPrinter(t, config.FormatText)
	require.NoError(t, p.Commitment(refCommit))
	assert.Equal(t, refCommit+"\n", buf.String())
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestJSONVerificationMatch(t *testing.T) {
	p, buf := newPrinter(t, config.FormatJSON)
	res := engine.VerifyRound(refCommit, "abc123", "pxfv6pdY0X", 1)

	require.NoError(t, p.Verification("id-1", res))

	out := decode(t, buf)
	assert.Equal(t, "id-1", out["id"])
	assert.Equal(t, true, out["valid"])
	assert.Equal(t, true, out["commitment_match"])
	assert.Equal(t, refCommit, out["computed_commitment"])
	assert.Equal(t, "pxfv6pdY0X", out["client_seed"])
	assert.Equal(t, float64(1), out["nonce"])
	assert.Equal(t, "52.64", out["roll"])
	assert.Equal(t, "b0a51a0a2887e71053c91f724777da089cba38899869f18d7d725e018e06312e", out["hmac"])
}

func TestJSONVerificationMismatch(t *testing.T) {
	p, buf := newPrinter(t, config.FormatJSON)
	res := engine.VerifyRound(strings.Repeat("deadbeef", 8), "abc123", "pxfv6pdY0X", 1)

	require.NoError(t, p.Verification("id-2", res))

	out := decode(t, buf)
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, false, out["commitment_match"])
	assert.NotContains(t, out, "roll")
	assert.NotContains(t, out, "hmac")
}

func TestJSONReplay(t *testing.T) {
	p, buf := newPrinter(t, config.FormatJSON)
	res := engine.VerifyRound(refCommit, "abc123", "pxfv6pdY0X", 1)
	rep, err := replay.Replay(context.Background(), replay.Request{
		Seeds:      engine.Seeds{Server: "abc123", Client: "pxfv6pdY0X"},
		NonceStart: 1,
		NonceEnd:   3,
	})
	require.NoError(t, err)

	require.NoError(t, p.Replay("id-3", res, rep))

	out := decode(t, buf)
	hits, ok := out["hits"].([]any)
	require.True(t, ok)
	require.Len(t, hits, 3)
	assert.Equal(t, map[string]any{"nonce": float64(3), "roll": "33.72"}, hits[2])

	summary, ok := out["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), summary["total_evaluated"])
	assert.Equal(t, "33.72", summary["min"])
	assert.Equal(t, "56.91", summary["max"])
	assert.Equal(t, false, summary["cancelled"])
}

func TestJSONMissingServerSeed(t *testing.T) {
	p, buf := newPrinter(t, config.FormatJSON)
	require.NoError(t, p.MissingServerSeed(Inputs{ClientSeed: "c", PublishedCommitment: refCommit, Nonce: 4}))

	out := decode(t, buf)
	assert.Equal(t, false, out["server_seed_provided"])
	assert.Equal(t, "c", out["client_seed"])
	assert.Equal(t, float64(4), out["nonce"])
}

func TestJSONCommitment(t *testing.T) {
	p, buf := newPrinter(t, config.FormatJSON)
	require.NoError(t, p.Commitment(refCommit))
	assert.Equal(t, refCommit, decode(t, buf)["commitment"])
}
