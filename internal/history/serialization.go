package history

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Serialization helpers for converting between journal entries and Redis hashes
//
// Redis stores data as string-to-string maps (hashes). The path array is
// JSON-encoded into a single hash field, keeping scalar fields individually
// readable while the path stays one atomic value.

// EntryToHash converts an Entry to a Redis hash format.
// The path array is JSON-encoded.
func EntryToHash(e *Entry) (map[string]interface{}, error) {
	pathJSON, err := json.Marshal(e.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal path: %w", err)
	}

	hash := map[string]interface{}{
		"id":           e.ID,
		"start":        e.Start,
		"goal":         e.Goal,
		"moves":        e.Moves,
		"path":         string(pathJSON),
		"solved_at_ms": e.SolvedAtMs,
	}

	return hash, nil
}

// HashToEntry converts a Redis hash to an Entry.
// JSON fields are decoded back to Go types.
func HashToEntry(hash map[string]string) (*Entry, error) {
	moves, err := strconv.Atoi(hash["moves"])
	if err != nil {
		return nil, fmt.Errorf("invalid moves field: %w", err)
	}

	var path []string
	if pathJSON := hash["path"]; pathJSON != "" {
		if err := json.Unmarshal([]byte(pathJSON), &path); err != nil {
			return nil, fmt.Errorf("failed to unmarshal path: %w", err)
		}
	}
	if path == nil {
		path = []string{}
	}

	solvedAtMs, err := strconv.ParseInt(hash["solved_at_ms"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid solved_at_ms field: %w", err)
	}

	entry := &Entry{
		ID:         hash["id"],
		Start:      hash["start"],
		Goal:       hash["goal"],
		Moves:      moves,
		Path:       path,
		SolvedAtMs: solvedAtMs,
	}

	return entry, nil
}
