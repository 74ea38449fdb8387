package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakmoor/destrier/internal/scaffold"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a destrier project",
	Long: `Initialize the working directory with default configuration and sample
queries.

Creates:
  • destrier.yml - Configuration file (output format, journal settings)
  • queries.txt  - Sample batch input for 'destrier batch'

Use --force to reinitialize an existing project (WARNING: overwrites
existing configuration).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (removes existing destrier.yml and queries.txt)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check for existing files (unless --force)
	if !forceInit {
		if err := scaffold.CheckExisting(); err != nil {
			return err
		}
	}

	// Initialize the project
	if err := scaffold.Initialize(forceInit); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Print success message
	scaffold.PrintSuccess()

	return nil
}
