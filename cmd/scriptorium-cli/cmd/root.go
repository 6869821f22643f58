package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scriptorium/internal/app"
	"scriptorium/internal/config"
)

var (
	v  = config.New()
	rt *app.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "scriptorium-cli",
	Short: "Read the Bible and track reading progress from the shell",
	Long: `scriptorium-cli reads Bible chapters, commentary and the interlinear
text, and keeps highlights, reading-plan progress, the Bible tracker and
reader preferences.

It shares its state directory with the scriptorium terminal reader, so
changes made here show up there and the other way round.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		return openRuntime()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", v.GetString(config.KeyDataDir), "directory holding state and the content cache")
	flags.String("content-url", v.GetString(config.KeyContentURL), "base URL of the content server")
	flags.Bool("no-cache", false, "do not use the persistent content cache")

	bindFlag(v, config.KeyDataDir, rootCmd, "data-dir")
	bindFlag(v, config.KeyContentURL, rootCmd, "content-url")
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}

func openRuntime() error {
	if noCache, _ := rootCmd.PersistentFlags().GetBool("no-cache"); noCache {
		v.Set(config.KeyCachePersistent, false)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := app.NewLogger(os.Stderr)
	if f, err := app.OpenLogFile(cfg); err == nil {
		logger = app.NewLogger(f)
	}

	rt, err = app.Open(cfg, logger)
	return err
}

// GetRuntime returns the initialized runtime
func GetRuntime() *app.Runtime {
	return rt
}
