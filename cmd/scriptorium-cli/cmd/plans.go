package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scriptorium/internal/application/commands"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/domain"
)

var (
	plansSearch string
	plansType   string
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List reading plans",
	Long: `List the reading plans of the catalogue with their progress.
Favorite plans are marked with *, saved plans with +.

Examples:
  scriptorium-cli plans
  scriptorium-cli plans --search gospel --type chronological`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt := GetRuntime()
		plans, err := rt.Library.SearchPlans(ctx, plansSearch, plansType)
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("No plans found")
			return nil
		}

		tbl := newTable()
		tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Days"), bold.Sprint("Done"))
		for _, p := range plans {
			flags := ""
			if rt.Stores.FavoritePlans.Has(p.ID) {
				flags += "*"
			}
			if rt.Stores.SavedPlans.Has(p.ID) {
				flags += "+"
			}
			pct := rt.Plans.Progress(p.ID).Percent(p.Days)
			tbl.AddRow(marked.Sprint(flags), p.ID, p.Title, p.Days, fmt.Sprintf("%d%%", pct))
		}
		printTable(tbl)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show and update one reading plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id> [day]",
	Short: "Show plan progress, or the readings of a day",
	Long: `Show the progress of a plan, or the readings of one day with their
reading keys.

Examples:
  scriptorium-cli plan show thematic
  scriptorium-cli plan show thematic 5`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt := GetRuntime()
		plan, err := rt.Library.Plan(ctx, args[0])
		if err != nil {
			return err
		}
		p := rt.Plans.Progress(plan.ID)

		if len(args) == 1 {
			heading.Println(plan.Title)
			if plan.Description != "" {
				fmt.Println(plan.Description)
			}
			fmt.Printf("\n%d of %d days complete (%d%%)\n", p.CompletedCount(), plan.Days, p.Percent(plan.Days))
			if len(p.CompletedDays) > 0 {
				faint.Printf("Completed days: %v\n", p.CompletedDays)
			}
			return nil
		}

		dayNum, err := parseDay(args[1])
		if err != nil {
			return err
		}
		day, err := rt.Library.PlanDay(ctx, plan.ID, dayNum)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("%s, day %d", plan.Title, day.Day)
		if day.Title != "" {
			title += ": " + day.Title
		}
		heading.Println(title)
		tbl := newTable()
		for _, r := range day.Bible {
			tbl.AddRow(checkbox(p.IsReadingComplete(day.Day, r.Key())), r.Label(), faint.Sprint(r.Key()))
		}
		for _, r := range day.Egw {
			tbl.AddRow(checkbox(p.IsReadingComplete(day.Day, r.Key())), r.Title, faint.Sprint(r.Key()))
		}
		printTable(tbl)
		if p.IsDayComplete(day.Day) {
			success.Println("Day complete")
		}
		return nil
	},
}

var planToggleDayCmd = &cobra.Command{
	Use:   "toggle-day <plan-id> <day>",
	Short: "Complete every reading of a day, or clear a complete day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dayNum, err := parseDay(args[1])
		if err != nil {
			return err
		}
		rt := GetRuntime()
		out, err := commands.NewTogglePlanDayCommand(rt.Plans, rt.Library, args[0], dayNum).Execute(context.Background())
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var planToggleReadingCmd = &cobra.Command{
	Use:   "toggle-reading <plan-id> <day> <reading-key>",
	Short: "Mark one reading of a day done or not done",
	Long: `Toggle one reading of a plan day. Reading keys are listed by
"plan show <plan-id> <day>". The day completes once all of its readings
are done.

Example:
  scriptorium-cli plan toggle-reading thematic 5 gen-5`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dayNum, err := parseDay(args[1])
		if err != nil {
			return err
		}
		rt := GetRuntime()
		out, err := commands.NewTogglePlanReadingCommand(rt.Plans, rt.Library, args[0], dayNum, args[2]).Execute(context.Background())
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var planFavoriteCmd = &cobra.Command{
	Use:   "favorite <plan-id>",
	Short: "Add a plan to the favorites, or remove it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := GetRuntime()
		return togglePlanFlag(commands.NewTogglePlanFlagCommand(rt.Stores.FavoritePlans, rt.Library, "favorites", args[0]))
	},
}

var planSaveCmd = &cobra.Command{
	Use:   "save <plan-id>",
	Short: "Add a plan to the saved plans, or remove it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := GetRuntime()
		return togglePlanFlag(commands.NewTogglePlanFlagCommand(rt.Stores.SavedPlans, rt.Library, "saved plans", args[0]))
	},
}

func togglePlanFlag(c *commands.TogglePlanFlagCommand) error {
	result, err := c.Execute(context.Background())
	if err != nil {
		return err
	}
	printResult(result.Message, result.Persist)
	return nil
}

func printOutcome(out *progress.Outcome) {
	if !out.Changed {
		fmt.Println("Nothing changed")
		return
	}
	printResult(out.Message, out.Persist)
}

func parseDay(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return n, nil
}

// planTypes lists the type filter values seen in the catalogue
func planTypes(plans []domain.Plan) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range plans {
		if p.Type != "" && !seen[p.Type] {
			seen[p.Type] = true
			out = append(out, p.Type)
		}
	}
	return out
}

func init() {
	plansCmd.Flags().StringVarP(&plansSearch, "search", "s", "", "filter by title, description or ID")
	plansCmd.Flags().StringVarP(&plansType, "type", "t", "", "filter by plan type")
	plansCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if err := openRuntime(); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		plans, err := GetRuntime().Library.Plans(context.Background())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return planTypes(plans), cobra.ShellCompDirectiveNoFileComp
	})

	planCmd.AddCommand(planShowCmd, planToggleDayCmd, planToggleReadingCmd, planFavoriteCmd, planSaveCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(planCmd)
}
