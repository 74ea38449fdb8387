package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakmoor/destrier/internal/batch"
	"github.com/oakmoor/destrier/internal/printer"
	"github.com/oakmoor/destrier/internal/query"
	"github.com/oakmoor/destrier/pkg/pathfind"
)

var (
	batchOutputFormat string
	batchJobs         int
	batchSave         bool
	batchNoSave       bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Solve many queries read from stdin",
	Long: `Solve a batch of queries read from stdin, one "FROM TO" pair per line.
Reading stops at EOF or the first blank line.

Every line is validated before anything is solved: a bad line anywhere
rejects the whole batch with its line number, and no paths are printed.
Valid batches produce exactly one result per query, in input order.

Queries are solved concurrently; --jobs caps the number of simultaneous
solves (default from config, one per CPU).

Output Formats:
  path - One space-separated path line per query, in input order
  json - A JSON array of result objects, in input order

Examples:
  # Solve the scaffolded sample queries
  destrier batch < queries.txt

  # Inline batch
  printf 'D4 G8\nA1 H8\n' | destrier batch

  # JSON results, throttled to two concurrent solves
  destrier batch --output=json --jobs=2 < queries.txt

  # Journal every result
  destrier batch --save < queries.txt`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutputFormat, "output", "o", "", "Output format: path or json (default from config)")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "Concurrent solves (default from config)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Journal every solve even when history is disabled")
	batchCmd.Flags().BoolVar(&batchNoSave, "no-save", false, "Skip journaling even when history is enabled")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg, batchOutputFormat)
	if err != nil {
		return err
	}

	lines, err := readQueryLines(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}
	if len(lines) == 0 {
		return printer.Error(
			"no queries to solve",
			"Batch mode reads one query per line from stdin, stopping at the first blank line.",
			[]string{"Try: printf 'D4 G8\\n' | destrier batch"},
		)
	}

	queries, err := query.ParseAll(lines)
	if err != nil {
		return printer.Error(
			"invalid query batch",
			err.Error(),
			[]string{"Each line needs a start and a goal square, like \"D4 G8\""},
		)
	}

	jobs := cfg.Batch.Jobs
	if batchJobs > 0 {
		jobs = batchJobs
	}

	results, err := batch.NewRunner(jobs).Solve(ctx, queries)
	if err != nil {
		return fmt.Errorf("batch solve failed: %w", err)
	}

	if err := writeResults(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}

	if resolveSave(cfg, batchSave, batchNoSave) {
		paths := make([]pathfind.Path, len(results))
		for i, r := range results {
			paths[i] = r.Path
		}
		journalPaths(ctx, cfg, paths)
	}

	return nil
}

// readQueryLines collects query lines until EOF or the first blank line.
func readQueryLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
