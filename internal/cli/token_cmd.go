package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *App, scope scopeFunc) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token for --user",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			token, err := app.Tokens.GenerateAccessToken(cmd.Context(), uuid.MustParse(s), email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email claim of the token")
	return cmd
}
