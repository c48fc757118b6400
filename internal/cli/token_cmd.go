package cli

import (
	"errors"

	"github.com/amreid/nextup/internal/config"
	"github.com/amreid/nextup/internal/httpapi"
	"github.com/spf13/cobra"
)

// newTokenCmd mints a bearer token for local development, since there is no
// login flow in the API itself.
func newTokenCmd(cfg config.Config) *cobra.Command {
	var userID, email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.JWTSecret == "" {
				return errors.New("NEXTUP_JWT_SECRET must be set")
			}
			if userID == "" {
				return errors.New("--user is required")
			}
			if email == "" {
				email = userID + "@localhost"
			}
			token, err := httpapi.MintToken([]byte(cfg.JWTSecret), userID, email)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to embed in the token")
	cmd.Flags().StringVar(&email, "email", "", "email claim (defaults to <user>@localhost)")
	return cmd
}
