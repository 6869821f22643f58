package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scriptorium/internal/application/commands"
	"scriptorium/internal/domain"
)

var (
	readMode   string
	readVerses string
)

var readCmd = &cobra.Command{
	Use:   "read [book] [chapter]",
	Short: "Read a chapter",
	Long: `Read a chapter of the Bible text, the commentary or the interlinear text.

Without arguments the last chapter read in the mode is shown, and
Genesis 1 the first time. Chapters out of range are clamped.

Examples:
  scriptorium-cli read
  scriptorium-cli read jhn 3 --verses 16-18
  scriptorium-cli read gen 1 --mode interlinear`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		mode, err := domain.ParseMode(readMode)
		if err != nil {
			return err
		}

		var book string
		var chapter int
		if len(args) > 0 {
			book = args[0]
		}
		if len(args) > 1 {
			chapter, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid chapter: %s", args[1])
			}
		}

		rt := GetRuntime()
		readCmd := commands.NewReadChapterCommand(rt.Library, rt.Stores, mode, book, chapter, readVerses)
		result, err := readCmd.Execute(ctx)
		if err != nil {
			return err
		}

		heading.Printf("%s %d\n\n", result.BookName, result.Position.Chapter)
		highlighted := make(map[int]bool, len(result.Highlighted))
		for _, n := range result.Highlighted {
			highlighted[n] = true
		}

		tbl := newTable()
		switch mode {
		case domain.ModeCommentary:
			if result.Commentary.Intro != "" {
				fmt.Printf("%s\n\n", result.Commentary.Intro)
			}
			for _, n := range result.Commentary.Notes {
				tbl.AddRow(faint.Sprint(n.Verse), n.Text)
			}
		case domain.ModeInterlinear:
			for _, v := range result.Interlinear {
				for i, w := range v.Words {
					num := ""
					if i == 0 {
						num = faint.Sprint(v.Number)
					}
					tbl.AddRow(num, w.Text, w.Translit, bold.Sprint(w.Strong), w.Gloss)
				}
			}
		default:
			for _, v := range result.Verses {
				text := v.Text
				if highlighted[v.Number] {
					text = marked.Sprint(text)
				}
				tbl.AddRow(faint.Sprint(v.Number), text)
			}
		}
		tbl.RightAlign(0)
		printTable(tbl)

		if !result.Persist.OK() {
			warning.Printf("warning: position not saved: %v\n", result.Persist.Err)
		}
		return nil
	},
}

var booksCmd = &cobra.Command{
	Use:   "books [query]",
	Short: "List or search the books of the Bible",
	Long: `List the books of the Bible, or find books by code or name.

Examples:
  scriptorium-cli books
  scriptorium-cli books corint`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl := newTable()
		tbl.AddRow(bold.Sprint("Code"), bold.Sprint("Book"), bold.Sprint("Chapters"))

		if len(args) == 0 {
			for _, b := range domain.Books() {
				tbl.AddRow(b.Code, b.Name, b.Chapters)
			}
			printTable(tbl)
			return nil
		}

		matches, err := commands.NewSearchBooksCommand(args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, m := range matches {
			tbl.AddRow(m.Code, m.Name, m.Chapters)
		}
		printTable(tbl)
		return nil
	},
}

func init() {
	readCmd.Flags().StringVarP(&readMode, "mode", "m", domain.ModeBible.String(), "reading mode: bible, commentary or interlinear")
	readCmd.Flags().StringVar(&readVerses, "verses", "", "verse selection (e.g. 3, 1-5, 1,4,7-9)")
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(booksCmd)
}
