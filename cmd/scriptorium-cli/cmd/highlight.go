package cmd

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"scriptorium/internal/application/commands"
	"scriptorium/internal/domain"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <verse-id>",
	Short: "Highlight a verse, or remove its highlight",
	Long: `Toggle the highlight of a verse given as book-chapter-verse.

Example:
  scriptorium-cli highlight jhn-3-16`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		toggleCmd := commands.NewToggleHighlightCommand(GetRuntime().Stores.Highlights, args[0])
		result, err := toggleCmd.Execute(ctx)
		if err != nil {
			return err
		}
		printResult(result.Message, result.Persist)
		return nil
	},
}

var highlightsBook string

var highlightsCmd = &cobra.Command{
	Use:   "highlights",
	Short: "List highlighted verses",
	Long: `List highlighted verses in canonical order, optionally for one book.

Examples:
  scriptorium-cli highlights
  scriptorium-cli highlights --book psa`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if highlightsBook != "" {
			book, ok := domain.LookupBook(highlightsBook)
			if !ok {
				return fmt.Errorf("unknown book: %s", highlightsBook)
			}
			prefix = book.Code + "-"
		}

		type ref struct {
			id               string
			order, ch, verse int
		}
		var refs []ref
		for _, id := range GetRuntime().Stores.Highlights.IDs() {
			if !strings.HasPrefix(id, prefix) {
				continue
			}
			code, ch, verse, err := domain.ParseVerseID(id)
			if err != nil {
				continue
			}
			refs = append(refs, ref{id: id, order: domain.BookOrder(code), ch: ch, verse: verse})
		}
		if len(refs) == 0 {
			fmt.Println("No highlights")
			return nil
		}
		slices.SortFunc(refs, func(a, b ref) int {
			return cmp.Or(cmp.Compare(a.order, b.order), cmp.Compare(a.ch, b.ch), cmp.Compare(a.verse, b.verse))
		})

		tbl := newTable()
		for _, r := range refs {
			code, _, _, _ := domain.ParseVerseID(r.id)
			pos := domain.Resolved{Book: code, Chapter: r.ch, Verse: r.verse}
			tbl.AddRow(r.id, pos.String())
		}
		printTable(tbl)
		return nil
	},
}

func init() {
	highlightsCmd.Flags().StringVarP(&highlightsBook, "book", "b", "", "only list highlights of this book")
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(highlightsCmd)
}
