package main

import (
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/security"
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		userID uint64
		role   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			if role != consts.RoleUser && role != consts.RoleAdmin {
				return fmt.Errorf("invalid role %q: must be %s or %s", role, consts.RoleUser, consts.RoleAdmin)
			}
			if _, err := loadConfig(); err != nil {
				return err
			}

			token, err := security.GenerateToken(userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&role, "role", consts.RoleUser, "role claim (USER or ADMIN)")
	return cmd
}
