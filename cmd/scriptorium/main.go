package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"scriptorium/internal/adapters/tui"
	"scriptorium/internal/app"
	"scriptorium/internal/application/navigation"
	"scriptorium/internal/config"
	"scriptorium/internal/events"
)

func main() {
	v := config.New()
	dataDir := flag.String("data-dir", v.GetString(config.KeyDataDir), "directory holding state and the content cache")
	contentURL := flag.String("content-url", v.GetString(config.KeyContentURL), "base URL of the content server")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: scriptorium [flags] [location]\n\nlocation is a query such as \"book=exo&chapter=3&verses=1-5\"\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	v.Set(config.KeyDataDir, *dataDir)
	v.Set(config.KeyContentURL, *contentURL)
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI, so logs go to the log file
	logFile, err := app.OpenLogFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	rt, err := app.Open(cfg, app.NewLogger(logFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	// Create and run TUI app
	a := tui.NewApp(rt)
	defer a.Close()

	if flag.NArg() > 0 {
		q := navigation.ParseRawQuery(flag.Arg(0))
		rt.Bus.Navigate(events.NavigateDetail{Book: q.Book, Chapter: q.Chapter, Verses: q.Verses})
	}

	p := tea.NewProgram(a, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		rt.Logger.Printf("tui: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
