// Package commands is the command-line entry point of the internship service.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"internship_backend/internals/configs"
	"internship_backend/internals/helpers/applog"
)

var rootCmd = &cobra.Command{
	Use:   "internship",
	Short: "Mentorship internship feedback service",
	Long: `Runs the internship feedback API: rounds, intern selections, the six
feedback forms with their submission windows, and the append-only version trail.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configs.LoadEnv()
		applog.Init(applog.Config{
			Level:  configs.LogLevel,
			Format: configs.LogFormat,
			Output: os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
}

// Execute runs the root command. Without a subcommand the server is started.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
