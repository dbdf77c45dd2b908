package main

import (
	"fmt"
	"io"

	"github.com/Sternrassler/issue-board/internal/tui"
	"github.com/Sternrassler/issue-board/pkg/issues"
	"github.com/Sternrassler/issue-board/pkg/logging"
	"github.com/Sternrassler/issue-board/pkg/pagination"
	"github.com/Sternrassler/issue-board/pkg/render"
	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	var page, rows int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of open issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pcfg := a.cfg.Pagination
			if cmd.Flags().Changed("rows") {
				pcfg.Rows = rows
				if err := pcfg.Validate(); err != nil {
					return err
				}
			}

			lister, _, closeFn, err := a.newLister(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			summaries, res := collect(cmd.Context(), lister)
			if !res.Succeeded() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No issues available.")
				return err
			}
			return writeList(cmd.OutOrStdout(), summaries, pcfg, page-1)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to print, as labelled by the pager")
	cmd.Flags().IntVar(&rows, "rows", pagination.DefaultRows, "rows per page (overrides the config file)")
	return cmd
}

// writeList prints page of summaries with the pager placed per cfg.
func writeList(w io.Writer, summaries []issues.Summary, cfg pagination.Config, page int) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}

	p := pagination.Paginate(summaries, cfg)
	p.Show(page)

	pager := ""
	if p.DisplayControls() {
		pager = render.PagerLine(p.Controls())
	}

	if pager != "" && p.Placement() == pagination.PositionTop {
		fmt.Fprintln(w, pager)
	}
	if _, err := fmt.Fprintln(w, render.TerminalTable(p.Visible())); err != nil {
		return err
	}
	if pager != "" && p.Placement() == pagination.PositionBottom {
		fmt.Fprintln(w, pager)
	}
	return nil
}

func newBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through open issues interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The browser owns the terminal.
			a.logger = logging.Setup(logging.Config{Level: a.cfg.Logging.Level, Output: io.Discard})

			lister, _, closeFn, err := a.newLister(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			return tui.Run(cmd.Context(), lister, a.boardTitle(), a.cfg.Pagination)
		},
	}
}
