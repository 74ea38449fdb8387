package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// OutputFormat specifies how journal listings are rendered.
type OutputFormat string

const (
	// OutputFormatDefault renders a human-readable table
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL renders complete entries as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(value) {
	case OutputFormatDefault, OutputFormatJSONL:
		return OutputFormat(value), nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be 'default' or 'jsonl')", value)
	}
}

// FormatTable writes entries as a formatted table to the provided writer.
// The table includes columns: ID, QUERY, MOVES, AGE, and PATH (truncated).
// Returns the number of entries formatted.
func FormatTable(w io.Writer, entries []*Entry, profile string) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No solves found for profile '%s'\n", profile)
		return 0
	}

	// Print header
	fmt.Fprintf(w, "Solves for profile '%s':\n\n", profile)

	// Print header row
	fmt.Fprintf(w, "%-10s %-7s %-5s %-8s %s\n",
		"ID", "QUERY", "MOVES", "AGE", "PATH")
	fmt.Fprintf(w, "%-10s %-7s %-5s %-8s %s\n",
		"----------", "-------", "-----", "--------", "----------------------------------------")

	// Print data rows
	for _, e := range entries {
		fmt.Fprintf(w, "%-10s %-7s %-5d %-8s %s\n",
			formatID(e.ID),
			e.Start+" "+e.Goal,
			e.Moves,
			formatTimestamp(e.SolvedAtMs),
			formatPath(e.Path),
		)
	}

	// Print count
	countMsg := "solve"
	if len(entries) != 1 {
		countMsg = "solves"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(entries), countMsg)

	return len(entries)
}

// FormatJSONL writes entries as line-delimited JSON (JSONL) to the provided
// writer. Each entry is written as a single JSON object on its own line.
// This format is ideal for streaming and processing with tools like jq.
func FormatJSONL(w io.Writer, entries []*Entry) error {
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry to JSON: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s\n", string(data))
		if err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes a single entry as pretty-printed JSON to the
// provided writer. Used by show mode to display complete entry details.
func FormatSingleJSON(w io.Writer, entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry to JSON: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	// Add newline for clean output
	fmt.Fprintln(w)

	return nil
}

// formatID truncates entry ID to first 8 characters for compact display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatPath joins the path for table display, truncated to 40 characters.
// Empty paths return "-".
func formatPath(path []string) string {
	if len(path) == 0 {
		return "-"
	}

	joined := strings.Join(path, " ")
	if len(joined) > 40 {
		return joined[:37] + "..."
	}
	return joined
}

// formatTimestamp formats Unix timestamp in milliseconds to human-readable
// time. Shows relative time like "2m ago", "1h ago", etc.
func formatTimestamp(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	t := time.Unix(timestampMs/1000, (timestampMs%1000)*1000000)
	diff := time.Since(t)

	if diff < time.Minute {
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
}
