package main

import (
	"errors"
	"fmt"
	"time"

	"zeecrown-admin/config"
	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type tokenOptions struct {
	secret string
	userID string
	email  string
	role   string
	ttl    time.Duration
}

func newTokenCmd() *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.secret, "secret", "", "HS256 signing secret (default: JWT_SECRET)")
	cmd.Flags().StringVar(&opts.userID, "user", "", "subject user id (default: random uuid)")
	cmd.Flags().StringVar(&opts.email, "email", "admin@localhost", "email claim")
	cmd.Flags().StringVar(&opts.role, "role", domain.RoleAdmin, "app_metadata.role claim")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func runToken(cmd *cobra.Command, opts *tokenOptions) error {
	secret := opts.secret
	if secret == "" {
		secret = config.Load().JWTSecret
	}
	if opts.ttl <= 0 {
		return errors.New("--ttl must be positive")
	}

	userID := opts.userID
	if userID == "" {
		userID = uuid.NewString()
	}

	utils.SetSecret(secret)
	token, err := utils.GenerateJWT(userID, opts.email, opts.role, opts.ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
