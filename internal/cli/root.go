// Package cli is the suitip command line: send tips, preview fees, follow the
// tip feed and manage the local keystore account.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OKaluzny/sui-tips/internal/config"
	"github.com/OKaluzny/sui-tips/internal/rpc"
	"github.com/OKaluzny/sui-tips/internal/wallet"
)

// app carries what every subcommand needs once the root has initialized.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	jsonOut    bool

	cfg config.Config
	out io.Writer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "suitip",
		Short: "Send and follow on-chain tips on Sui",
		Long: `suitip sends tips through the tipping Move package and shows the
recent tip feed. A platform fee of 1.5% is paid on top of every tip.

Configuration is read from the environment (a .env file is loaded if present)
or from a YAML file passed with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		newSendCmd(a),
		newFeeCmd(a),
		newFeedCmd(a),
		newAccountCmd(a),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return errors.Wrapf(err, "log level %q", a.logLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !os.IsNotExist(err) {
			slog.Warn("env file not loaded", "path", a.envFile, "error", err)
		}
	}

	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = config.FromEnv()
	}
	a.out = cmd.OutOrStdout()

	slog.Debug("config loaded",
		"rpc_url", a.cfg.RPCURL,
		"package_id", a.cfg.PackageID,
		"fee_receiver", a.cfg.FeeReceiver,
	)
	return nil
}

func (a *app) client() *rpc.Client {
	return rpc.NewClient(a.cfg.RPCURL, rpc.Options{Timeout: a.cfg.RPCTimeout})
}

func (a *app) keystore() (*wallet.Keystore, error) {
	if a.cfg.Mnemonic == "" {
		return nil, errors.New("no wallet configured: set SUI_MNEMONIC or run `suitip account new`")
	}
	return wallet.NewKeystore(a.cfg.Mnemonic)
}

func (a *app) session(chain wallet.Chain) (*wallet.KeystoreSession, error) {
	ks, err := a.keystore()
	if err != nil {
		return nil, err
	}
	return wallet.NewKeystoreSession(ks, chain, wallet.SessionConfig{
		Index:     a.cfg.AccountIndex,
		GasBudget: a.cfg.GasBudget,
	}), nil
}
