package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"scriptorium/internal/application/state"
)

var (
	bold    = color.New(color.Bold)
	heading = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	marked  = color.New(color.FgHiYellow, color.Bold)
)

// printResult prints a command message and warns when the change was kept
// in memory only
func printResult(message string, res state.PersistResult) {
	success.Println(message)
	if !res.OK() {
		warning.Fprintf(os.Stderr, "warning: not saved: %v\n", res.Err)
	}
}

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 80
	return tbl
}

func printTable(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func checkbox(done bool) string {
	if done {
		return success.Sprint("[x]")
	}
	return "[ ]"
}
