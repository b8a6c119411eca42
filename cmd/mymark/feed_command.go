package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mymark/internal/feed"
)

func newFeedCommand(ctx *commandContext) *cobra.Command {
	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Candidate feed utilities",
	}
	feedCmd.AddCommand(newFeedPreviewCommand(ctx))
	return feedCmd
}

func newFeedPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show what the configured candidate source returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			subject, err := ctx.subject()
			if err != nil {
				return err
			}

			source, err := feed.NewSource(cfg)
			if err != nil {
				return err
			}
			items, err := source.LoadCandidates(cmd.Context(), subject)
			if err != nil {
				return fmt.Errorf("load candidates: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Feed returned no candidates.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.ImageRef,
					item.SiteURL,
				})
			}
			writeRows(out,
				[]string{"ID", "Image", "Site"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			)
			return nil
		},
	}
}
