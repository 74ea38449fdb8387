// Package history records solved queries in a Redis-backed journal so past
// solves can be listed, inspected, and watched live.
//
// Entries are stored as Redis hashes namespaced by profile, with a sorted
// set indexing them by solve time. Every recorded entry is also published
// on a Pub/Sub channel for `destrier history watch`.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oakmoor/destrier/pkg/board"
	"github.com/oakmoor/destrier/pkg/pathfind"
)

// Entry is one journaled solve: the query endpoints, the shortest path
// found, and when it was solved.
type Entry struct {
	ID         string   `json:"id"`           // UUID assigned at record time
	Start      string   `json:"start"`        // Algebraic start square
	Goal       string   `json:"goal"`         // Algebraic goal square
	Moves      int      `json:"moves"`        // len(Path)-1
	Path       []string `json:"path"`         // Full path, start and goal inclusive
	SolvedAtMs int64    `json:"solved_at_ms"` // Unix milliseconds
}

// NewEntry builds a journal entry for a solved path, assigning a fresh ID
// and the current timestamp. The path must be non-empty.
func NewEntry(path pathfind.Path) *Entry {
	squares := path.Squares()
	return &Entry{
		ID:         uuid.New().String(),
		Start:      squares[0],
		Goal:       squares[len(squares)-1],
		Moves:      path.Moves(),
		Path:       squares,
		SolvedAtMs: time.Now().UnixMilli(),
	}
}

// Validate checks that the entry is internally consistent before it is
// written or after it is read back.
func (e *Entry) Validate() error {
	if !isValidUUID(e.ID) {
		return fmt.Errorf("invalid entry ID: %s (must be a UUID)", e.ID)
	}

	if _, err := board.Parse(e.Start); err != nil {
		return fmt.Errorf("invalid start square: %w", err)
	}
	if _, err := board.Parse(e.Goal); err != nil {
		return fmt.Errorf("invalid goal square: %w", err)
	}

	if len(e.Path) == 0 {
		return fmt.Errorf("entry path is empty")
	}
	for i, sq := range e.Path {
		if _, err := board.Parse(sq); err != nil {
			return fmt.Errorf("invalid path square at position %d: %w", i, err)
		}
	}

	if e.Path[0] != e.Start {
		return fmt.Errorf("path starts at %s but entry start is %s", e.Path[0], e.Start)
	}
	if e.Path[len(e.Path)-1] != e.Goal {
		return fmt.Errorf("path ends at %s but entry goal is %s", e.Path[len(e.Path)-1], e.Goal)
	}

	if e.Moves != len(e.Path)-1 {
		return fmt.Errorf("entry claims %d moves but path has %d", e.Moves, len(e.Path)-1)
	}

	return nil
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
