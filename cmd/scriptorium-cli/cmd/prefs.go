package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scriptorium/internal/application/commands"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show reader preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := GetRuntime().Stores.Preferences.Get()
		tbl := newTable()
		tbl.AddRow(bold.Sprint("theme"), p.Theme)
		tbl.AddRow(bold.Sprint("fontSize"), fmt.Sprintf("%dpx", p.FontSize))
		tbl.AddRow(bold.Sprint("lineHeight"), p.LineHeight)
		tbl.AddRow(bold.Sprint("letterSpacing"), p.LetterSpacing)
		tbl.AddRow(bold.Sprint("wordSpacing"), p.WordSpacing)
		tbl.AddRow(bold.Sprint("fontFamily"), p.FontFamily)
		tbl.AddRow(bold.Sprint("rulerEnabled"), p.RulerEnabled)
		tbl.AddRow(bold.Sprint("speechRate"), p.SpeechRate)
		tbl.AddRow(bold.Sprint("skipVerses"), p.SkipVerses)
		tbl.AddRow(bold.Sprint("skipFootnotes"), p.SkipFootnotes)
		printTable(tbl)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one preference",
	Long: fmt.Sprintf(`Change one reader preference. Numbers outside their range are clamped.

Names: %s

Examples:
  scriptorium-cli prefs set theme sepia
  scriptorium-cli prefs set fontSize 20px`, strings.Join(commands.PreferenceNames, ", ")),
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return commands.PreferenceNames, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSetPreferenceCommand(GetRuntime().Stores.Preferences, args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		printResult(result.Message, result.Persist)
		return nil
	},
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewResetPreferencesCommand(GetRuntime().Stores.Preferences).Execute(context.Background())
		if err != nil {
			return err
		}
		printResult(result.Message, result.Persist)
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd, prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}
