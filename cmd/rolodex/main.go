package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rolodex/internal/client"
	"rolodex/internal/config"
	"rolodex/internal/contacts"
	"rolodex/internal/eventbus"
	"rolodex/internal/logutil"
	"rolodex/internal/ui"
)

// app is the state shared by every command once the root pre-run has loaded it
type app struct {
	configPath string
	debug      bool

	cfg       *config.Config
	configSvc config.ConfigService
	logger    *zap.Logger
	bus       eventbus.EventBus
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rolodex",
		Short: "A searchable address book for the browser and the terminal",
		Long: `rolodex keeps a small address book and serves it as a web app with a
searchable contact sidebar. The same routes drive a terminal browser,
either in-process or against a running server.

Configuration is read from $ROLODEX_CONFIG or the user config directory;
ROLODEX_<SECTION>_<KEY> environment variables override single settings.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $ROLODEX_CONFIG or the user config dir)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newBrowseCmd(a),
		newListCmd(a),
		newNewCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the config and builds the logger and the event bus.
// browse logs to a file so the log never draws over the UI.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfigServiceAt(a.configPath, nil).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logFile := cfg.Log.File
	if cmd.Name() == "browse" {
		logFile = cfg.Browse.LogFile
	}
	a.logger, err = logutil.New(logutil.Options{Level: cfg.Log.Level, File: logFile, Debug: a.debug})
	if err != nil {
		return err
	}

	a.bus = eventbus.New(a.logger)
	a.configSvc = config.NewConfigServiceAt(a.configPath, a.bus)
	a.logger.Debug("config loaded", zap.String("path", a.configSvc.Path()))
	return nil
}

func (a *app) teardown() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// openStore opens the configured store, seeding it when enabled.
// Writes are announced on the bus.
func (a *app) openStore(ctx context.Context) (contacts.Store, func() error, error) {
	db := a.cfg.Database
	store, closeStore, err := contacts.Open(db.Driver, db.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", db.Driver, err)
	}
	if db.Seed {
		n, err := contacts.Seed(ctx, store)
		if err != nil {
			_ = closeStore()
			return nil, nil, err
		}
		if n > 0 {
			a.logger.Info("seeded sample contacts", zap.Int("count", n))
		}
	}
	return contacts.WithEvents(store, a.bus), closeStore, nil
}

// backend picks the remote server when one is configured, the local store otherwise.
// The returned label names where the contacts come from.
func (a *app) backend(ctx context.Context) (ui.Backend, string, func() error, error) {
	if remote := a.cfg.Browse.Remote; remote != "" {
		c, err := client.New(remote, client.WithLogger(a.logger))
		if err != nil {
			return nil, "", nil, err
		}
		return c, remote, func() error { return nil }, nil
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	label := a.cfg.Database.Driver
	if a.cfg.Database.Driver == config.DriverSQLite {
		label = a.cfg.Database.Path
	}
	return ui.NewLocalBackend(store, a.logger), label, closeStore, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
