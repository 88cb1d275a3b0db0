// Package cli implements the planctl command line client.
package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/infra/dependency"
)

// App holds the use cases and services the commands run against.
type App struct {
	UseCases dependency.UseCases
	Tokens   adapter.TokenService
}

// NewRootCmd creates the top-level "planctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var user string

	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Manage financial plans and inspect the planned calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&user, "user", os.Getenv("PLANCTL_USER"), "User id whose plans are used (env PLANCTL_USER)")

	scope := func() (string, error) {
		id, err := uuid.Parse(user)
		if err != nil {
			return "", fmt.Errorf("--user must be a user id: %w", err)
		}
		return id.String(), nil
	}

	root.AddCommand(
		newTokenCmd(app, scope),
		newAddCmd(app, scope),
		newListCmd(app, scope),
		newCompleteCmd(app, scope),
		newRemoveCmd(app, scope),
		newCalendarCmd(app, scope),
		newUpcomingCmd(app, scope),
		newSummaryCmd(app, scope),
	)

	return root
}

// scopeFunc resolves the plan scope from the --user flag.
type scopeFunc func() (string, error)
