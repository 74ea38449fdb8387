package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakmoor/destrier/internal/printer"
	"github.com/oakmoor/destrier/pkg/board"
)

var neighborsOutputFormat string

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <square>",
	Short: "List the legal knight moves from a square",
	Long: `List every square a knight can reach from the given square in one move.

Squares come back in a fixed enumeration order, the same order the solver
expands them, so output is deterministic. Corners have two moves, central
squares have eight.

Output Formats:
  path - The reachable squares, space-separated
  json - A JSON object with square and neighbors

Examples:
  # Two moves from the corner
  destrier neighbors A1

  # All eight from the center
  destrier neighbors D4

  # JSON output
  destrier neighbors D4 --output=json`,
	Args: cobra.ExactArgs(1),
	RunE: runNeighbors,
}

func init() {
	neighborsCmd.Flags().StringVarP(&neighborsOutputFormat, "output", "o", "", "Output format: path or json (default from config)")
	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg, neighborsOutputFormat)
	if err != nil {
		return err
	}

	sq, err := board.Parse(strings.ToUpper(args[0]))
	if err != nil {
		return printer.Error(
			"invalid square",
			err.Error(),
			[]string{"Squares are a file letter A-H and a rank digit 1-8, like D4"},
		)
	}

	neighbors := board.Neighbors(sq)
	names := make([]string, len(neighbors))
	for i, n := range neighbors {
		names[i] = n.String()
	}

	if format == "json" {
		out := struct {
			Square    string   `json:"square"`
			Neighbors []string `json:"neighbors"`
		}{
			Square:    sq.String(),
			Neighbors: names,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal neighbors: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, " "))
	return nil
}
