package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradeledger/config"
	"github.com/rustyeddy/tradeledger/internal/logger"
	"github.com/rustyeddy/tradeledger/ledger"
	"github.com/rustyeddy/tradeledger/storage"
)

// RootConfig holds the global flags.
type RootConfig struct {
	ConfigPath string
	Store      string
	Path       string
	LogLevel   string
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	rc  RootConfig
	now func() time.Time

	cfg   *config.Config
	log   *logrus.Logger
	audit *logger.AuditLogger

	kv    storage.Backend
	store *ledger.Store
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	cmd := &cobra.Command{
		Use:           "tradeledger",
		Short:         "Tradeledger: record trade outcomes and review performance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&a.rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&a.rc.Store, "store", "", "Storage backend: memory|file|sqlite")
	cmd.PersistentFlags().StringVar(&a.rc.Path, "path", "", "Storage file path")
	cmd.PersistentFlags().StringVar(&a.rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}

	// Subcommands
	cmd.AddCommand(
		newAddCmd(a),
		newUndoCmd(a),
		newClearCmd(a),
		newCapitalCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newEquityCmd(a),
		newMonthlyCmd(a),
		newExportCmd(a),
		newRevisionsCmd(a),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tradeledger (dev)")
		},
	})

	return cmd
}

// setup loads .env, the config file and the environment, then applies the
// flags that were set explicitly.
func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(a.rc.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Storage.Type = a.rc.Store
		if !flags.Changed("path") {
			cfg.Storage.Path = defaultPath(a.rc.Store)
		}
	}
	if flags.Changed("path") {
		cfg.Storage.Path = a.rc.Path
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	a.audit = logger.NewAuditLogger(a.log)
	return nil
}

func defaultPath(store string) string {
	switch store {
	case config.StorageSQLite:
		return "./tradeledger.sqlite"
	case config.StorageFile:
		return "./tradeledger.json"
	}
	return ""
}

// openLedger opens the configured backend and loads the ledger from it.
// The returned func closes the backend.
func (a *app) openLedger() (func(), error) {
	kv, err := storage.Open(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.kv = kv
	a.store = ledger.Load(kv,
		ledger.WithClock(a.now),
		ledger.WithLogger(a.log.WithField("component", "ledger")),
		ledger.WithDefaultCapital(a.cfg.Ledger.DefaultCapital),
	)

	return func() {
		if err := kv.Close(); err != nil {
			a.log.WithError(err).Warn("close store")
		}
	}, nil
}

// withLedger wraps a RunE so the ledger is open for its duration.
func (a *app) withLedger(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		closeStore, err := a.openLedger()
		if err != nil {
			return err
		}
		defer closeStore()
		return run(cmd, args)
	}
}

// persisted turns a persistence failure into a warning. The change still
// applies to the output of this invocation.
func persisted(cmd *cobra.Command, err error) error {
	if err != nil && errors.Is(err, ledger.ErrPersist) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		return nil
	}
	return err
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
