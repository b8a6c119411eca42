package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mymark/internal/archive"
	"mymark/internal/feed"
	"mymark/internal/identity"
	"mymark/internal/logging"
	"mymark/internal/notifications"
	"mymark/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review pending matches one at a time",
		Long: `Review walks the pending candidate queue one item at a time.

For each match choose a disposition: approve it, mark it as posted by you,
report it, or request a takedown. Report and takedown open a reason prompt
that must be submitted or cancelled before anything else can happen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			subject, err := ctx.subject()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			gate := identity.NewStaticGate(cfg)
			allowed, err := gate.Authorize(cmd.Context(), subject)
			if err != nil {
				return fmt.Errorf("authorize %s: %w", subject, err)
			}
			if !allowed {
				return fmt.Errorf("user %s is not allowed to enter review", subject)
			}

			source, err := feed.NewSource(cfg)
			if err != nil {
				return err
			}
			items, err := source.LoadCandidates(cmd.Context(), subject)
			if err != nil {
				return fmt.Errorf("load candidates: %w", err)
			}

			dispatcher := notifications.NewDispatcher(
				notifications.NewService(cfg),
				time.Duration(cfg.Notifications.RequestTimeout)*time.Second,
				logger,
			)
			defer dispatcher.Wait()

			session, err := review.StartSession(subject, items, dispatcher, logger)
			if err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			store, err := archive.Open(cfg)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			return runReviewLoop(cmd.Context(), session, store, dispatcher, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
