package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var strongLimit int

var strongCmd = &cobra.Command{
	Use:   "strong <number|query>",
	Short: "Look up Strong's dictionary entries",
	Long: `Show a Strong's dictionary entry by number, or search the lemma,
transliteration and definition.

Examples:
  scriptorium-cli strong H7225
  scriptorium-cli strong beginning`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		dict, err := GetRuntime().Library.Strong(ctx)
		if err != nil {
			return err
		}

		if e, ok := dict.Lookup(args[0]); ok {
			heading.Printf("%s  %s\n", e.Number, e.Lemma)
			if e.Translit != "" {
				faint.Printf("%s", e.Translit)
				if e.Pronunciation != "" {
					faint.Printf("  (%s)", e.Pronunciation)
				}
				fmt.Println()
			}
			fmt.Printf("\n%s\n", e.Definition)
			if e.KJV != "" {
				fmt.Printf("\nKJV: %s\n", e.KJV)
			}
			return nil
		}

		entries := dict.Search(args[0], strongLimit)
		if len(entries) == 0 {
			fmt.Println("No results found")
			return nil
		}
		tbl := newTable()
		for _, e := range entries {
			tbl.AddRow(bold.Sprint(e.Number), e.Lemma, e.Translit, e.Definition)
		}
		printTable(tbl)
		return nil
	},
}

func init() {
	strongCmd.Flags().IntVarP(&strongLimit, "limit", "n", 20, "maximum number of search results")
	rootCmd.AddCommand(strongCmd)
}
