package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	// configPath is the global --config flag, shared by every command.
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "destrier",
	Short: "Destrier - shortest knight-path solver for the chessboard",
	Long: `Destrier computes the shortest sequence of legal knight moves between
two squares on a standard 8x8 chessboard.

Squares use algebraic notation: a file letter A-H followed by a rank digit
1-8, like D4. Solves can optionally be journaled to Redis so past queries
can be listed, inspected, and watched live.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	// e.g., "destrier --save D4 G8" instead of "destrier path --save D4 G8"
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "destrier.yml", "Path to the configuration file")
}
