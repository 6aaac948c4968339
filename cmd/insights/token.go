package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var clientID string
	var role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API access token",
		Long: `Mint a bearer token for calling the HTTP API. The token is signed with
JWT_ACCESS_SECRET and expires after JWT_ACCESS_EXPIRY, so the secret must
match the one the API server runs with.

Examples:
  insights token --client-id reporting-job
  insights token --client-id ci --role admin -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			manager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
			token, err := manager.GenerateToken(clientID, role)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(map[string]interface{}{
					"access_token": token,
					"client_id":    clientID,
					"role":         role,
					"expires_at":   time.Now().Add(manager.GetExpiry()).UTC().Format(time.RFC3339),
				})
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "client identifier recorded in the token subject")
	cmd.Flags().StringVar(&role, "role", "client", "client role claim")
	if err := cmd.MarkFlagRequired("client-id"); err != nil {
		panic(err)
	}
	return cmd
}
