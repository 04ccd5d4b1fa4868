package main

import (
	"fmt"
	"net/url"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"rolodex/internal/domain"
	"rolodex/internal/routes"
	"rolodex/internal/search"
	"rolodex/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	var (
		remote string
		pager  bool
	)
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print the contacts matching query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote != "" {
				a.cfg.Browse.Remote = remote
			}
			ctx := cmd.Context()
			backend, _, closeBackend, err := a.backend(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeBackend() }()

			u := &url.URL{Path: "/"}
			if len(args) == 1 {
				u.RawQuery = url.Values{search.QueryParam: {args[0]}}.Encode()
			}
			data, err := backend.Load(ctx, u)
			if err != nil {
				return err
			}

			out := contactTable(data.Contacts)
			if pager {
				return ui.ShowInPager(out)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a running rolodex server")
	cmd.Flags().BoolVar(&pager, "pager", false, "page the list with ov")
	return cmd
}

func contactTable(cs []domain.Contact) string {
	if len(cs) == 0 {
		return routes.NoContactsPlaceholder + "\n"
	}
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		name, ok := c.DisplayName()
		if !ok {
			name = routes.NoNamePlaceholder
		}
		fav := ""
		if c.Favorite {
			fav = routes.FavoriteGlyph
		}
		handle := ""
		if h := c.TwitterHandle(); h != "" {
			handle = "@" + h
		}
		rows = append(rows, []string{name, fav, handle, c.ID})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "", "TWITTER", "ID").
		Rows(rows...)
	return t.String() + "\n"
}

func newNewCmd(a *app) *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty contact and print its edit path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote != "" {
				a.cfg.Browse.Remote = remote
			}
			ctx := cmd.Context()
			backend, _, closeBackend, err := a.backend(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeBackend() }()

			redirect, err := backend.Act(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), redirect.Location)
			return err
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a running rolodex server")
	return cmd
}
