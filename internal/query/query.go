// Package query parses solve requests of the form "D4 G8": a start square
// and a goal square separated by whitespace.
package query

import (
	"fmt"
	"strings"

	"github.com/oakmoor/destrier/pkg/board"
)

// Query is one parsed solve request.
type Query struct {
	Start board.Square
	Goal  board.Square
}

// String renders the query back in its input form: "D4 G8".
func (q Query) String() string {
	return q.Start.String() + " " + q.Goal.String()
}

// ParseLine parses a single query line. Tokens are split on any run of
// whitespace, so "D4 G8" and "D4\tG8" both parse, and files are folded to
// uppercase, so "d4 g8" works too. Exactly two squares are required; square
// errors wrap board.ErrInvalidSquare.
func ParseLine(line string) (Query, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Query{}, fmt.Errorf("expected a start and a goal square (like %q), got %d fields", "D4 G8", len(fields))
	}

	start, err := board.Parse(strings.ToUpper(fields[0]))
	if err != nil {
		return Query{}, fmt.Errorf("start square: %w", err)
	}
	goal, err := board.Parse(strings.ToUpper(fields[1]))
	if err != nil {
		return Query{}, fmt.Errorf("goal square: %w", err)
	}

	return Query{Start: start, Goal: goal}, nil
}

// ParseAll parses a batch of query lines. Every line is validated before
// any query is returned, so a bad line anywhere rejects the whole batch.
// Errors name the offending line by its 1-based position.
func ParseAll(lines []string) ([]Query, error) {
	queries := make([]Query, 0, len(lines))
	for i, line := range lines {
		q, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}
