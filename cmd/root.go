// Package cmd содержит команды CLI сервера LOOM.
package cmd

import (
	"fmt"
	"os"

	"loom_server_go/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "loom-server",
	Short: "LOOM personal organization server",
	Long: `REST JSON API for notes, calendar events, todos, recipes,
subscriptions and trips, backed by a single SQLite file.`,
	SilenceUsage: true,
}

// Execute запускает корневую команду.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default ./loom.yaml if present)")
	rootCmd.PersistentFlags().String("db", "", "path to SQLite database file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json or text")

	mustBind(v, "database.path", rootCmd.PersistentFlags().Lookup("db"))
	mustBind(v, "log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind(v, "log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
