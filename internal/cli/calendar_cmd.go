package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/entity"
)

func entryRow(e entity.CalendarEntry) []string {
	return []string{e.Start.String(), typeStyle(e.Resource.Type).Render(e.Title), e.Resource.Category}
}

func newCalendarCmd(app *App, scope scopeFunc) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the planned entries between --from and --to",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			out, err := app.UseCases.QueryCalendar.Execute(cmd.Context(), plan.QueryCalendarInput{
				Scope:     s,
				StartDate: from,
				EndDate:   to,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(out.Entries))
			for _, e := range out.Entries {
				rows = append(rows, entryRow(e))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", styleHeader.Render(out.Window.String()))
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"DATE", "ENTRY", "CATEGORY"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newUpcomingCmd(app *App, scope scopeFunc) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Print the entries due in the next days",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			out, err := app.UseCases.UpcomingPlans.Execute(cmd.Context(), plan.UpcomingPlansInput{Scope: s, Days: days})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(out.Entries))
			for _, e := range out.Entries {
				row := entryRow(e.Entry)
				if e.PastDue {
					row = append(row, styleExpense.Render("past due"))
				}
				rows = append(rows, row)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"DATE", "ENTRY", "CATEGORY", ""}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", plan.DefaultUpcomingDays, "Number of days to look ahead")
	return cmd
}

func newSummaryCmd(app *App, scope scopeFunc) *cobra.Command {
	var from, to, balance string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print planned income, expense and the projected balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			current, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", balance, err)
			}

			out, err := app.UseCases.SummarizePlans.Execute(cmd.Context(), plan.SummarizePlansInput{
				Scope:          s,
				StartDate:      from,
				EndDate:        to,
				CurrentBalance: current,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", styleHeader.Render(out.Window.String()))
			fmt.Fprintf(w, "Planned income:    %s\n", styleIncome.Render(out.Summary.PlannedIncome.String()))
			fmt.Fprintf(w, "Planned expense:   %s\n", styleExpense.Render(out.Summary.PlannedExpense.String()))
			fmt.Fprintf(w, "Projected balance: %s\n", out.Summary.ProjectedBalance.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&balance, "balance", "0", "Current balance")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
