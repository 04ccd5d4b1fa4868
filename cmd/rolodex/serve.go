package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rolodex/internal/config"
	"rolodex/internal/eventbus"
	"rolodex/internal/web"
)

type serveFlags struct {
	addr   string
	db     string
	memory bool
	noSeed bool
}

func newServeCmd(a *app) *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the address book over HTTP",
		Long: `Serves the contact sidebar and pages. The listen address is printed once
the listener is bound, so --addr 127.0.0.1:0 picks a free port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			f.apply(cmd, a.cfg)
			return a.serve(ctx, cmd)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&f.db, "db", "", "SQLite database path")
	cmd.Flags().BoolVar(&f.memory, "memory", false, "keep contacts in memory only")
	cmd.Flags().BoolVar(&f.noSeed, "no-seed", false, "do not load sample contacts into an empty store")
	cmd.MarkFlagsMutuallyExclusive("db", "memory")
	return cmd
}

func (f serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = f.db
	}
	if f.memory {
		cfg.Database.Driver = config.DriverMemory
	}
	if f.noSeed {
		cfg.Database.Seed = false
	}
}

func (a *app) serve(ctx context.Context, cmd *cobra.Command) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	srv, err := web.New(store, web.Options{Logger: a.logger, Bus: a.bus})
	if err != nil {
		return err
	}

	for _, t := range []eventbus.EventType{
		eventbus.EventContactCreated,
		eventbus.EventContactUpdated,
		eventbus.EventContactDeleted,
		eventbus.EventError,
	} {
		defer a.bus.Subscribe(t, a.logEvent)()
	}

	started := make(chan string, 1)
	defer a.bus.Subscribe(eventbus.EventServerStarted, func(e eventbus.DomainEvent) {
		select {
		case started <- e.(eventbus.ServerStartedEvent).Addr:
		default:
		}
	})()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, a.cfg.Server.Addr)
	})
	g.Go(func() error {
		select {
		case addr := <-started:
			fmt.Fprintf(cmd.OutOrStdout(), "rolodex listening on http://%s\n", addr)
		case <-gctx.Done():
		}
		return nil
	})
	return g.Wait()
}

// logEvent records store writes; the routes already log the request side
func (a *app) logEvent(e eventbus.DomainEvent) {
	switch e := e.(type) {
	case eventbus.ContactCreatedEvent:
		a.logger.Debug("store event", zap.String("type", string(e.Type())), zap.String("id", e.Contact.ID))
	case eventbus.ContactUpdatedEvent:
		a.logger.Debug("store event", zap.String("type", string(e.Type())), zap.String("id", e.Contact.ID))
	case eventbus.ContactDeletedEvent:
		a.logger.Debug("store event", zap.String("type", string(e.Type())), zap.String("id", e.ID))
	case eventbus.ErrorEvent:
		a.logger.Error(e.Message, zap.Error(e.Err))
	}
}
