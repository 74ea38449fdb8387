// Package pathfind computes shortest knight paths between board squares.
//
// The move graph is tiny (64 squares, at most 8 moves each) and unweighted,
// so a breadth-first search from the start square is optimal. Candidate
// moves are expanded in board.KnightOffsets order and each square is
// enqueued at most once, which makes the returned path deterministic even
// when several paths share the minimum length.
package pathfind

import (
	"fmt"
	"strings"

	"github.com/oakmoor/destrier/pkg/board"
)

// Path is a sequence of squares from start to goal inclusive. Each
// consecutive pair is one knight move, so a Path of length n is n-1 moves.
// A single-square Path means start and goal coincide.
type Path []board.Square

// Squares returns the path in algebraic notation, one string per square.
func (p Path) Squares() []string {
	squares := make([]string, len(p))
	for i, s := range p {
		squares[i] = s.String()
	}
	return squares
}

// Moves returns the number of knight moves along the path.
func (p Path) Moves() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// String renders the path as space-separated algebraic squares, the form
// accepted back by board.Parse square by square: "D4 C6 E7 G8".
func (p Path) String() string {
	return strings.Join(p.Squares(), " ")
}

// Shortest returns a minimum-move knight path from start to goal. When
// start equals goal the path is that single square. Both squares must be
// on the board; invalid input returns an error wrapping
// board.ErrInvalidSquare.
//
// The knight graph on an 8x8 board is connected, so every valid pair has
// a path and the maximum distance is six moves.
func Shortest(start, goal board.Square) (Path, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("start square: %w", err)
	}
	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("goal square: %w", err)
	}

	// cameFrom records the square each discovered square was reached
	// from. It doubles as the visited set; the start maps to itself.
	cameFrom := map[board.Square]board.Square{start: start}
	frontier := []board.Square{start}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		if current == goal {
			return reconstruct(cameFrom, start, goal), nil
		}

		for _, next := range board.Neighbors(current) {
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = current
			frontier = append(frontier, next)
		}
	}

	// Unreachable on a connected graph. Kept so a future variant with
	// blocked squares fails loudly instead of returning a partial path.
	return nil, fmt.Errorf("no knight path from %s to %s", start, goal)
}

// Distance returns the minimum number of knight moves from start to goal.
func Distance(start, goal board.Square) (int, error) {
	path, err := Shortest(start, goal)
	if err != nil {
		return 0, err
	}
	return path.Moves(), nil
}

// reconstruct walks cameFrom backwards from goal to start, then reverses
// the result in place so it reads start first.
func reconstruct(cameFrom map[board.Square]board.Square, start, goal board.Square) Path {
	path := Path{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
