package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scriptorium/internal/application"
	"scriptorium/internal/application/commands"
	"scriptorium/internal/application/progress"
	"scriptorium/internal/domain"
)

var trackerCmd = &cobra.Command{
	Use:   "tracker [book]",
	Short: "Show Bible tracker progress",
	Long: `Show how much of the Bible has been read, per testament and per book.
With a book, list its chapters.

Examples:
  scriptorium-cli tracker
  scriptorium-cli tracker rom`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker := GetRuntime().Tracker
		p := tracker.Progress()

		if len(args) == 1 {
			book, err := application.ValidateBook(args[0])
			if err != nil {
				return err
			}
			heading.Printf("%s  %d%%\n", book.Name, p.BookProgress(book.Code))
			var sb strings.Builder
			for ch := 1; ch <= book.Chapters; ch++ {
				label := fmt.Sprintf("%3d", ch)
				if p.IsChapterRead(book.Code, ch) {
					label = success.Sprint(label)
				} else {
					label = faint.Sprint(label)
				}
				sb.WriteString(label)
				if ch%10 == 0 {
					sb.WriteByte('\n')
				}
			}
			fmt.Println(strings.TrimRight(sb.String(), "\n"))
			return nil
		}

		heading.Printf("Bible  %d%%  (%d chapters read)\n", p.TotalProgress(), p.ReadChapters())
		fmt.Printf("Old Testament  %.1f%%\nNew Testament  %.1f%%\n\n",
			p.SectionProgress(domain.OldTestament), p.SectionProgress(domain.NewTestament))

		tbl := newTable()
		for _, b := range domain.Books() {
			read := p.ReadCount(b)
			if read == 0 {
				continue
			}
			tbl.AddRow(b.Name, fmt.Sprintf("%d/%d", read, b.Chapters), fmt.Sprintf("%d%%", p.BookProgress(b.Code)))
		}
		tbl.RightAlign(1)
		tbl.RightAlign(2)
		printTable(tbl)
		return nil
	},
}

var trackerToggleCmd = &cobra.Command{
	Use:   "toggle <book> <chapter>",
	Short: "Mark a chapter read or unread",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid chapter: %s", args[1])
		}
		result, err := commands.NewToggleChapterCommand(GetRuntime().Tracker, args[0], chapter).Execute(context.Background())
		if err != nil {
			return err
		}
		printResult(result.Message, result.Persist)
		return nil
	},
}

var trackerResetYes bool

var trackerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all tracker progress",
	Long: `Clear every chapter from the Bible tracker. Asks for confirmation
unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var confirm progress.Confirmer = stdinConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
		if trackerResetYes {
			confirm = progress.ConfirmFunc(func(string) (bool, error) { return true, nil })
		}
		result, err := commands.NewResetTrackerCommand(GetRuntime().Tracker, confirm).Execute(context.Background())
		if errors.Is(err, application.ErrConfirmationRequired) {
			fmt.Println("Reset cancelled")
			return nil
		}
		if err != nil {
			return err
		}
		printResult(result.Message, result.Persist)
		return nil
	},
}

// stdinConfirmer asks on out and accepts y or yes
func stdinConfirmer(in io.Reader, out io.Writer) progress.ConfirmFunc {
	return func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}

func init() {
	trackerResetCmd.Flags().BoolVarP(&trackerResetYes, "yes", "y", false, "do not ask for confirmation")
	trackerCmd.AddCommand(trackerToggleCmd, trackerResetCmd)
	rootCmd.AddCommand(trackerCmd)
}
