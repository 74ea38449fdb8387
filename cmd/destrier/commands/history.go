package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakmoor/destrier/internal/filter"
	"github.com/oakmoor/destrier/internal/history"
	"github.com/oakmoor/destrier/internal/printer"
	"github.com/oakmoor/destrier/internal/resolver"
	"github.com/oakmoor/destrier/internal/timespec"
	"github.com/oakmoor/destrier/pkg/board"
)

var (
	historyOutputFormat string
	historyLimit        int
	historySince        string
	historyUntil        string
	historySquare       string
	historyEndpoint     string
	historyMinMoves     int
	historyMaxMoves     int

	watchOutputFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and inspect journaled solves",
	Long: `List journaled solves with filtering, newest first.

Solves land in the journal when history is enabled in destrier.yml or a
solve runs with --save. Entries are namespaced by profile, so several
journals can share one Redis.

Output Formats:
  default - Human-readable table with ID, query, moves, age, and path
  jsonl   - Line-delimited JSON, one solve per line

Time Filters:
  --since  - Show solves after this time
  --until  - Show solves before this time

Content Filters:
  --square    - Only solves whose path touches this square
  --endpoint  - Only solves starting or ending on this square
  --min-moves - Only solves with at least this many moves
  --max-moves - Only solves with at most this many moves

Examples:
  # List all journaled solves
  destrier history

  # The last ten solves
  destrier history --limit=10

  # Solves from the last hour that pass through E5
  destrier history --since=1h --square=E5

  # Long solves as JSONL for piping to jq
  destrier history --output=jsonl --min-moves=5 | jq .id`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one journaled solve as JSON",
	Long: `Show the complete details of a single journaled solve as pretty-printed
JSON. Accepts a full ID or a unique prefix of at least 6 characters.

Examples:
  # Full ID
  destrier history show 550e8400-e29b-41d4-a716-446655440000

  # Short prefix
  destrier history show 550e84`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every journaled solve for the profile",
	Long: `Delete every journaled solve and the solve index for the configured
profile. Other profiles sharing the same Redis are untouched.`,
	Args: cobra.NoArgs,
	RunE: runHistoryClear,
}

var historyWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream solves as they are journaled",
	Long: `Stream solves live as they are recorded, until interrupted.

Each journaled solve is printed the moment it lands, whether it came from
this terminal or another process sharing the profile.

Output Formats:
  default - One human-readable line per solve
  jsonl   - Line-delimited JSON for programmatic processing

Examples:
  # Watch the configured profile
  destrier history watch

  # Capture solves as JSONL
  destrier history watch --output=jsonl > solves.jsonl`,
	Args: cobra.NoArgs,
	RunE: runHistoryWatch,
}

func init() {
	historyCmd.Flags().StringVarP(&historyOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum solves to list (0 = all)")

	// Time-based filters
	historyCmd.Flags().StringVar(&historySince, "since", "", "Show solves after time (duration, date, or RFC3339)")
	historyCmd.Flags().StringVar(&historyUntil, "until", "", "Show solves before time (duration, date, or RFC3339)")

	// Content-based filters
	historyCmd.Flags().StringVar(&historySquare, "square", "", "Only solves whose path touches this square")
	historyCmd.Flags().StringVar(&historyEndpoint, "endpoint", "", "Only solves starting or ending on this square")
	historyCmd.Flags().IntVar(&historyMinMoves, "min-moves", 0, "Only solves with at least this many moves")
	historyCmd.Flags().IntVar(&historyMaxMoves, "max-moves", 0, "Only solves with at most this many moves")

	historyWatchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyWatchCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputFormat, err := history.ParseOutputFormat(historyOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			err.Error(),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	sinceMS, untilMS, err := timespec.ParseRange(historySince, historyUntil)
	if err != nil {
		return printer.Error(
			"invalid time filter",
			err.Error(),
			[]string{"Use a duration like '1h30m', a date like '2026-08-21', or RFC3339 like '2026-08-21T13:00:00Z'"},
		)
	}

	criteria, err := buildCriteria()
	if err != nil {
		return printer.Error(
			"invalid content filter",
			err.Error(),
			[]string{"Squares are a file letter A-H and a rank digit 1-8, like D4"},
		)
	}

	store, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, historyLimit, sinceMS, untilMS)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	entries = criteria.Apply(entries)

	if outputFormat == history.OutputFormatJSONL {
		return history.FormatJSONL(cmd.OutOrStdout(), entries)
	}
	history.FormatTable(cmd.OutOrStdout(), entries, cfg.History.Profile)
	return nil
}

// buildCriteria assembles the content filters, canonicalizing square names
// so lowercase flag values match journaled entries.
func buildCriteria() (*filter.Criteria, error) {
	criteria := &filter.Criteria{
		MinMoves: historyMinMoves,
		MaxMoves: historyMaxMoves,
	}

	if historySquare != "" {
		sq, err := board.Parse(strings.ToUpper(historySquare))
		if err != nil {
			return nil, fmt.Errorf("--square: %w", err)
		}
		criteria.Square = sq.String()
	}
	if historyEndpoint != "" {
		sq, err := board.Parse(strings.ToUpper(historyEndpoint))
		if err != nil {
			return nil, fmt.Errorf("--endpoint: %w", err)
		}
		criteria.Endpoint = sq.String()
	}

	return criteria, nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	shortID := args[0]

	// Resolve short ID to full UUID
	fullID, err := resolver.ResolveEntryID(ctx, store, shortID)
	if err != nil {
		if resolver.IsNotFoundError(err) {
			return printer.Error(
				fmt.Sprintf("solve '%s' not found", shortID),
				"No journaled solve matches that ID.",
				[]string{
					"List solves:\n  destrier history",
					fmt.Sprintf("Verify the profile:\n  current profile is '%s'", cfg.History.Profile),
				},
			)
		}
		if resolver.IsAmbiguousError(err) {
			ambigErr := err.(*resolver.AmbiguousError)
			fmt.Fprintln(os.Stderr, resolver.FormatAmbiguousError(ambigErr))
			return fmt.Errorf("ambiguous short ID")
		}
		return fmt.Errorf("failed to resolve solve ID: %w", err)
	}

	entry, err := store.Get(ctx, fullID)
	if err != nil {
		if history.IsNotFound(err) {
			return printer.Error(
				fmt.Sprintf("solve '%s' not found", fullID),
				"The solve was resolved but could not be fetched.",
				[]string{"This might indicate a concurrent clear. Try again."},
			)
		}
		return fmt.Errorf("failed to get solve: %w", err)
	}

	return history.FormatSingleJSON(cmd.OutOrStdout(), entry)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}

	printer.Success("Cleared %d solve(s) from profile '%s'\n", count, cfg.History.Profile)
	return nil
}

func runHistoryWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputFormat, err := history.ParseOutputFormat(watchOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			err.Error(),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	store, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	sub, err := store.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to solve events: %w", err)
	}
	defer sub.Close()

	if outputFormat == history.OutputFormatDefault {
		printer.Info("Watching solves for profile '%s' (Ctrl+C to stop)...\n", cfg.History.Profile)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	out := cmd.OutOrStdout()
	for {
		select {
		case <-sigCh:
			return nil
		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			printer.Warning("skipping malformed solve event: %v\n", err)
		case entry, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeWatchEntry(out, outputFormat, entry); err != nil {
				return err
			}
		}
	}
}

// writeWatchEntry renders one streamed solve: a JSONL line, or a
// timestamped human-readable line.
func writeWatchEntry(w io.Writer, format history.OutputFormat, e *history.Entry) error {
	if format == history.OutputFormatJSONL {
		return history.FormatJSONL(w, []*history.Entry{e})
	}

	_, err := fmt.Fprintf(w, "%s  %s %s  %d moves  %s\n",
		time.UnixMilli(e.SolvedAtMs).Format(time.RFC3339),
		e.Start,
		e.Goal,
		e.Moves,
		strings.Join(e.Path, " "),
	)
	return err
}
