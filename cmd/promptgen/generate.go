package main

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/logger"
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		userID          uint64
		adminID         uint64
		includeFeedback bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and schedule a fresh batch of 12 prompts for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			ctx := logger.NewTraceContext(cmd.Context(), "cli-generate")

			svcs, cleanup, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svcs.Prompt.GenerateBatch(ctx, adminID, &dto.GeneratePromptsDTO{
				UserID:          userID,
				IncludeFeedback: includeFeedback,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s for user %d\n", res.Message, userID)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&userID, "user", 0, "target user id")
	cmd.Flags().Uint64Var(&adminID, "admin", 0, "admin user id recorded as creator")
	cmd.Flags().BoolVar(&includeFeedback, "include-feedback", false, "feed the user's recent feedback comments into the batch prompt")
	return cmd
}

func newArchiveCmd() *cobra.Command {
	var graceDays int

	cmd := &cobra.Command{
		Use:   "archive-stale",
		Short: "Archive unpushed prompts whose scheduled date is older than the grace period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.NewTraceContext(cmd.Context(), "cli-archive")

			svcs, cleanup, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svcs.Prompt.ArchiveStale(ctx, graceDays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %d prompts\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&graceDays, "grace-days", 14, "days past the scheduled date before a prompt is archived")
	return cmd
}
