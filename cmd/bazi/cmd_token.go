package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bazi-engine/internal/service"
)

var tokenFlags struct {
	client string
	ttl    time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API access token signed with $API_JWT_SECRET",
	RunE:  runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.StringVar(&tokenFlags.client, "client", "", "Client ID the token is issued to")
	f.DurationVar(&tokenFlags.ttl, "ttl", 0, "Token lifetime (default: $API_TOKEN_TTL_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("client")
}

func runToken(cmd *cobra.Command, _ []string) error {
	ttl := tokenFlags.ttl
	if ttl <= 0 {
		ttl = cli.cfg.TokenTTL()
	}
	tokens := service.NewTokenService(cli.cfg.JWTSecret, ttl, cli.cfg.JWTIssuer)
	if !tokens.Enabled() {
		return fmt.Errorf("API_JWT_SECRET is not set")
	}
	token, expires, err := tokens.Issue(tokenFlags.client)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.Format(time.RFC3339))
	return nil
}
