package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakmoor/destrier/internal/printer"
	"github.com/oakmoor/destrier/internal/query"
	"github.com/oakmoor/destrier/pkg/pathfind"
)

var (
	pathOutputFormat string
	pathSave         bool
	pathNoSave       bool
)

var pathCmd = &cobra.Command{
	Use:   "path <from> <to>",
	Short: "Solve the shortest knight path between two squares",
	Long: `Solve the shortest sequence of legal knight moves from one square to
another. The result always starts at <from> and ends at <to>, and no
shorter sequence exists.

Output Formats:
  path - The squares visited, space-separated ("D4 C6 E7 G8")
  json - A JSON object with start, goal, moves, and path

Journaling:
  With history enabled in destrier.yml, every solve is recorded to Redis.
  --save journals a single solve without enabling history; --no-save skips
  journaling for this solve. A failed journal write degrades to a warning,
  the path is always printed.

Examples:
  # Solve a single query
  destrier path D4 G8

  # Lowercase squares work too
  destrier path d4 g8

  # JSON output for scripting
  destrier path D4 G8 --output=json | jq .moves

  # Record this solve in the journal
  destrier path D4 G8 --save`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().StringVarP(&pathOutputFormat, "output", "o", "", "Output format: path or json (default from config)")
	pathCmd.Flags().BoolVar(&pathSave, "save", false, "Journal this solve even when history is disabled")
	pathCmd.Flags().BoolVar(&pathNoSave, "no-save", false, "Skip journaling even when history is enabled")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg, pathOutputFormat)
	if err != nil {
		return err
	}

	q, err := query.ParseLine(strings.Join(args, " "))
	if err != nil {
		return printer.Error(
			"invalid query",
			err.Error(),
			[]string{"Squares are a file letter A-H and a rank digit 1-8, like D4"},
		)
	}

	path, err := pathfind.Shortest(q.Start, q.Goal)
	if err != nil {
		return fmt.Errorf("failed to solve %q: %w", q.String(), err)
	}

	if err := writePath(cmd.OutOrStdout(), format, path); err != nil {
		return err
	}

	if resolveSave(cfg, pathSave, pathNoSave) {
		journalPaths(ctx, cfg, []pathfind.Path{path})
	}

	return nil
}
