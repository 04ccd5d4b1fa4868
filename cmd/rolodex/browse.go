package main

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rolodex/internal/search"
	"rolodex/internal/ui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Browse contacts in the terminal",
		Long: `Opens the terminal browser. Without --remote the contacts come from the
configured store; with it they come from a running rolodex server.
An optional query starts the browser on that search.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote != "" {
				a.cfg.Browse.Remote = remote
			}
			return a.browse(cmd, args)
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a running rolodex server")
	return cmd
}

func (a *app) browse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	backend, label, closeBackend, err := a.backend(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	start := &url.URL{Path: "/"}
	if len(args) == 1 {
		start.RawQuery = url.Values{search.QueryParam: {args[0]}}.Encode()
	}

	opts := ui.Options{Backend: backend, Logger: a.logger, Label: label, Start: start}
	if a.cfg.Browse.Remote == "" {
		// in-process writes arrive on the bus; a remote server's do not
		opts.Bus = a.bus
	}
	model := ui.NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	a.logger.Info("browser started", zap.String("backend", label))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
