package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the persistent content cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the content cache holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tier := GetRuntime().Tier
		if tier == nil {
			fmt.Println("Persistent cache disabled")
			return nil
		}
		stats, err := tier.Stats(context.Background())
		if err != nil {
			return err
		}

		tbl := newTable()
		tbl.AddRow(bold.Sprint("Database"), tier.Path())
		tbl.AddRow(bold.Sprint("Entries"), stats.Entries)
		tbl.AddRow(bold.Sprint("Size"), formatBytes(stats.Bytes))
		if stats.Entries > 0 {
			tbl.AddRow(bold.Sprint("Oldest"), time.UnixMilli(stats.Oldest).Format(time.DateTime))
			tbl.AddRow(bold.Sprint("Newest"), time.UnixMilli(stats.Newest).Format(time.DateTime))
		}
		tbl.AddRow(bold.Sprint("TTL"), GetRuntime().Config.CacheTTL)
		printTable(tbl)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tier := GetRuntime().Tier
		if tier == nil {
			fmt.Println("Persistent cache disabled")
			return nil
		}
		n, err := tier.Clear(context.Background())
		if err != nil {
			return err
		}
		success.Printf("Removed %d cached documents\n", n)
		return nil
	},
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
