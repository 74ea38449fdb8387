package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/oakmoor/destrier/internal/batch"
	"github.com/oakmoor/destrier/internal/config"
	"github.com/oakmoor/destrier/internal/history"
	"github.com/oakmoor/destrier/internal/printer"
	"github.com/oakmoor/destrier/pkg/pathfind"
)

// loadConfig loads destrier.yml and applies the configured color mode.
// A missing file falls back to defaults unless --config named it
// explicitly, in which case the file must exist.
func loadConfig() (*config.DestrierConfig, error) {
	var (
		cfg *config.DestrierConfig
		err error
	)
	if rootCmd.PersistentFlags().Changed("config") {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault(configPath)
	}
	if err != nil {
		return nil, printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Fix %s, or remove it to fall back to defaults", configPath)},
		)
	}

	printer.SetColorMode(cfg.Output.Color)
	return cfg, nil
}

// resolveFormat picks the solve output format. An explicit --output flag
// wins over the configured default.
func resolveFormat(cfg *config.DestrierConfig, flagValue string) (string, error) {
	format := cfg.Output.Format
	if flagValue != "" {
		format = flagValue
	}
	if format != "path" && format != "json" {
		return "", printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", format),
			[]string{"Valid formats: path, json"},
		)
	}
	return format, nil
}

// resolveSave decides whether a solve should be journaled.
// Explicit flags win over config; --no-save wins over --save.
func resolveSave(cfg *config.DestrierConfig, save, noSave bool) bool {
	if noSave {
		return false
	}
	return save || cfg.History.Enabled
}

// openStore connects a journal store using the configured Redis URL and
// profile, and verifies connectivity before returning it.
func openStore(ctx context.Context, cfg *config.DestrierConfig) (*history.Store, error) {
	redisOpts, err := redis.ParseURL(cfg.RedisURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	store, err := history.NewStore(redisOpts, cfg.History.Profile, cfg.History.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal store: %w", err)
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisURL(), err)
	}

	return store, nil
}

// openJournal opens the journal for an explicit history command. Unlike
// solve-time journaling, an unreachable journal here is a hard error.
func openJournal(ctx context.Context, cfg *config.DestrierConfig) (*history.Store, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"journal unavailable",
			"Could not reach the solve journal.",
			map[string]string{
				"redis":   cfg.RedisURL(),
				"profile": cfg.History.Profile,
			},
			[]string{
				fmt.Sprintf("Start Redis, or point %s at a running instance", config.EnvRedisURL),
				"Check the history section of destrier.yml",
			},
		)
	}
	return store, nil
}

// journalPaths records solved paths, degrading to a warning when the
// journal is unreachable. Solve output is never withheld because
// journaling failed.
func journalPaths(ctx context.Context, cfg *config.DestrierConfig, paths []pathfind.Path) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		printer.Warning("solve not journaled: %v\n", err)
		return
	}
	defer store.Close()

	for _, p := range paths {
		if err := store.Record(ctx, history.NewEntry(p)); err != nil {
			printer.Warning("solve not journaled: %v\n", err)
			return
		}
	}
}

// pathJSON is the JSON shape for one solved query.
type pathJSON struct {
	Start string   `json:"start"`
	Goal  string   `json:"goal"`
	Moves int      `json:"moves"`
	Path  []string `json:"path"`
}

func newPathJSON(p pathfind.Path) pathJSON {
	squares := p.Squares()
	return pathJSON{
		Start: squares[0],
		Goal:  squares[len(squares)-1],
		Moves: p.Moves(),
		Path:  squares,
	}
}

// writePath renders one solved path in the chosen format: the bare path
// line, or a pretty-printed JSON object.
func writePath(w io.Writer, format string, p pathfind.Path) error {
	if format == "json" {
		data, err := json.MarshalIndent(newPathJSON(p), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal path: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, p.String())
	return nil
}

// writeResults renders batch results: one path line per query, or a JSON
// array in query order.
func writeResults(w io.Writer, format string, results []batch.Result) error {
	if format == "json" {
		out := make([]pathJSON, len(results))
		for i, r := range results {
			out[i] = newPathJSON(r.Path)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	for _, r := range results {
		fmt.Fprintln(w, r.Path.String())
	}
	return nil
}
