package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mymark/internal/archive"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var allUsers bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			subject := ""
			if !allUsers {
				if subject, err = ctx.subject(); err != nil {
					return err
				}
			}

			store, err := archive.Open(cfg)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			resolutions, err := store.List(cmd.Context(), subject)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resolutions) == 0 {
				fmt.Fprintln(out, "No archived resolutions.")
				return nil
			}

			rows := make([][]string, 0, len(resolutions))
			for _, r := range resolutions {
				rows = append(rows, []string{
					strconv.FormatInt(r.Item.ID, 10),
					r.Subject,
					r.Item.SiteURL,
					r.Disposition.String(),
					r.ResolvedAt.Local().Format(time.RFC3339),
				})
			}
			writeRows(out,
				[]string{"ID", "Subject", "Site", "Disposition", "Resolved"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allUsers, "all", false, "Show every subject's resolutions")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var allUsers bool

	cmd := &cobra.Command{
		Use:   "history-clear",
		Short: "Delete archived resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			subject := ""
			if !allUsers {
				if subject, err = ctx.subject(); err != nil {
					return err
				}
			}

			store, err := archive.Open(cfg)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context(), subject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d archived resolutions\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allUsers, "all", false, "Clear every subject's resolutions")
	return cmd
}
