package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/planner/internal/application/usecase/plan"
	"github.com/finance-tracker/planner/internal/domain/calendar"
	"github.com/finance-tracker/planner/internal/domain/entity"
	"github.com/finance-tracker/planner/internal/domain/valueobject"
)

func newAddCmd(app *App, scope scopeFunc) *cobra.Command {
	var title, amount, planType, category, start, end, every, description string
	var completed bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a planned income or expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			startDate, err := valueobject.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}

			draft := entity.PlanDraft{
				Title:     title,
				Amount:    value,
				Type:      entity.PlanType(planType),
				Category:  category,
				StartDate: startDate,
				Completed: completed,
			}
			if description != "" {
				draft.Description = &description
			}
			if end != "" {
				endDate, err := valueobject.ParseDate(end)
				if err != nil {
					return fmt.Errorf("invalid end date: %w", err)
				}
				draft.EndDate = &endDate
			}
			if every != "" {
				cadence := entity.RecurringType(every)
				draft.IsRecurring = true
				draft.RecurringType = &cadence
			}

			out, err := app.UseCases.CreatePlan.Execute(cmd.Context(), plan.CreatePlanInput{Scope: s, Draft: draft})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", out.Plan.ID,
				typeStyle(out.Plan.Type).Render(calendar.AmountTitler{}.Title(out.Plan)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&amount, "amount", "", "Positive amount")
	cmd.Flags().StringVar(&planType, "type", string(entity.PlanTypeExpense), "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Optional end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&every, "every", "", "Recurrence: daily, weekly, monthly or yearly")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the plan as already realized")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newListCmd(app *App, scope scopeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			out, err := app.UseCases.ListPlans.Execute(cmd.Context(), plan.ListPlansInput{Scope: s})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(out.Plans))
			for _, p := range out.Plans {
				recurrence := "-"
				if p.RecurringType != nil {
					recurrence = string(*p.RecurringType)
				}
				done := ""
				if p.Completed {
					done = "✓"
				}
				rows = append(rows, []string{
					p.ID, p.StartDate.String(), p.Title, p.Category,
					typeStyle(p.Type).Render(calendar.FormatAmount(p.Amount)),
					recurrence, done,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "START", "TITLE", "CATEGORY", "AMOUNT", "REPEATS", "DONE"}, rows))
			return nil
		},
	}
}

func newCompleteCmd(app *App, scope scopeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <plan-id>",
		Short: "Toggle the completed flag of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			out, err := app.UseCases.ToggleCompleted.Execute(cmd.Context(), plan.ToggleCompletedInput{Scope: s, PlanID: args[0]})
			if err != nil {
				return err
			}
			state := "open"
			if out.Plan.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", out.Plan.Title, state)
			return nil
		},
	}
}

func newRemoveCmd(app *App, scope scopeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <plan-id>",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scope()
			if err != nil {
				return err
			}
			out, err := app.UseCases.DeletePlan.Execute(cmd.Context(), plan.DeletePlanInput{Scope: s, PlanID: args[0]})
			if err != nil {
				return err
			}
			if !out.Deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No plan %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
