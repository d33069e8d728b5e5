package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configPath путь к TOML конфигурации, общий для всех команд
var configPath string

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Tattoo studio reservations backend",
	Long: `Backend of the tattoo studio dashboard: reservations, staff, inbox,
chat relay notifications and the daily appointment summary.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to the TOML configuration file")

	rootCmd.AddCommand(serveCmd, dailySummaryCmd, migrateCmd, hashPasswordCmd, staffCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
