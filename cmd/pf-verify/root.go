package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MJE43/stake-pf-verify/internal/config"
	"github.com/MJE43/stake-pf-verify/internal/engine"
	"github.com/MJE43/stake-pf-verify/internal/logger"
	"github.com/MJE43/stake-pf-verify/internal/report"
)

// app carries flag values and the resolved configuration between cobra hooks.
type app struct {
	configPath string
	logLevel   string
	output     string

	server    string
	client    string
	published string
	nonce     nonceFlag

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pf-verify",
		Short: "Verify a provably-fair dice round from a revealed server seed",
		Long: "Checks that SHA-256(server seed) equals the commitment published before the round,\n" +
			"then recomputes the roll from HMAC-SHA256(server seed, \"<client seed>:<nonce>\").\n" +
			"Without --server only the stored public values are shown.",
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runVerify,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "optional yaml config file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVarP(&a.output, "output", "o", config.FormatText, "output format: text or json")
	pf.StringVarP(&a.server, "server", "s", "", "revealed server seed")
	pf.StringVarP(&a.client, "client", "c", config.DefaultClientSeed, "client seed")
	pf.StringVarP(&a.published, "published", "p", config.DefaultPublishedCommitment, "published commitment (hex SHA-256 of the server seed)")
	a.nonce = 1
	pf.VarP(&a.nonce, "nonce", "n", "nonce / round number (non-negative integer)")

	cmd.AddCommand(
		newCommitCommand(a),
		newReplayCommand(a),
	)

	return cmd
}

// setup loads configuration, applies explicitly set flags on top of it and
// initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return usageError(err)
	}

	flags := cmd.Flags()
	if flags.Changed("client") {
		cfg.Verifier.ClientSeed = a.client
	}
	if flags.Changed("published") {
		cfg.Verifier.PublishedCommitment = a.published
	}
	if flags.Changed("nonce") {
		cfg.Verifier.Nonce = uint64(a.nonce)
	}
	if flags.Changed("output") {
		cfg.Output.Format = a.output
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}
	if err := logger.Setup(cfg.Environment, cfg.Log.Level); err != nil {
		return usageError(err)
	}

	a.cfg = cfg
	return nil
}

func (a *app) printer(cmd *cobra.Command) (report.Printer, error) {
	return report.New(a.cfg.Output.Format, cmd.OutOrStdout())
}

func (a *app) inputs() report.Inputs {
	return report.Inputs{
		ClientSeed:          a.cfg.Verifier.ClientSeed,
		PublishedCommitment: a.cfg.Verifier.PublishedCommitment,
		Nonce:               a.cfg.Verifier.Nonce,
	}
}

// verify runs the commitment check and logs the outcome under a fresh
// verification id.
func (a *app) verify(cmd *cobra.Command) (string, engine.Result) {
	id := uuid.NewString()
	in := a.inputs()
	ctx := logger.WithFields(cmd.Context(),
		zap.String("verification_id", id),
		logger.SeedHash("server_hash", a.server),
		zap.String("client_seed", in.ClientSeed),
		zap.Uint64("nonce", in.Nonce),
	)

	res := engine.VerifyRound(in.PublishedCommitment, a.server, in.ClientSeed, in.Nonce)
	if res.Valid {
		logger.Info(ctx, "commitment verified", zap.String("roll", engine.FormatRoll(*res.Roll)))
		logger.Debug(ctx, "round digest",
			zap.String("message", engine.Message(in.ClientSeed, in.Nonce)),
			zap.String("hmac", res.Digest),
		)
	} else {
		logger.Info(ctx, "commitment mismatch",
			zap.String("published", res.Published),
			zap.String("computed", res.Computed),
		)
	}
	return id, res
}

func (a *app) runVerify(cmd *cobra.Command, _ []string) error {
	p, err := a.printer(cmd)
	if err != nil {
		return err
	}

	if a.server == "" {
		return p.MissingServerSeed(a.inputs())
	}

	id, res := a.verify(cmd)
	if err := p.Verification(id, res); err != nil {
		return err
	}
	if !res.Valid {
		return ErrVerificationFailed
	}
	return nil
}
