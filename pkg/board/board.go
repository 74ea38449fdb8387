package board

import (
	"errors"
	"fmt"
)

// Size is the number of files and ranks on the board.
const Size = 8

// ErrInvalidSquare indicates text or coordinates that do not name a square
// on the 8x8 board. Errors returned by Parse and Validate wrap it, so
// callers can test with errors.Is.
var ErrInvalidSquare = errors.New("invalid square")

// Square is a single board square, held as zero-based indexes: File 0-7
// maps to files A-H and Rank 0-7 maps to ranks 1-8.
type Square struct {
	File int
	Rank int
}

// Offset is a relative jump between squares, in files and ranks.
type Offset struct {
	DFile int
	DRank int
}

// KnightOffsets lists the eight knight jumps in a fixed order: highest
// rank jump first, files left to right within a rank. Neighbors generates
// candidates in this order, which pins down the exact path reported when
// several shortest paths exist.
var KnightOffsets = [8]Offset{
	{-1, 2}, {1, 2},
	{-2, 1}, {2, 1},
	{-2, -1}, {2, -1},
	{-1, -2}, {1, -2},
}

// Parse converts algebraic notation ("D4") into a Square. Input must be
// exactly two characters, an uppercase file A-H and a rank digit 1-8.
// Anything else returns an error wrapping ErrInvalidSquare.
func Parse(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("%w: %q is not in algebraic notation (want a file A-H and a rank 1-8, like D4)", ErrInvalidSquare, text)
	}

	file := text[0]
	if file < 'A' || file > 'H' {
		return Square{}, fmt.Errorf("%w: file %q in %q must be A-H", ErrInvalidSquare, string(file), text)
	}

	rank := text[1]
	if rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: rank %q in %q must be 1-8", ErrInvalidSquare, string(rank), text)
	}

	return Square{File: int(file - 'A'), Rank: int(rank - '1')}, nil
}

// MustParse is Parse for squares known to be valid, such as fixtures and
// examples. It panics on invalid input.
func MustParse(text string) Square {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// String renders the square in algebraic notation. The zero value prints
// as "A1".
func (s Square) String() string {
	return string(rune('A'+s.File)) + string(rune('1'+s.Rank))
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < Size && s.Rank >= 0 && s.Rank < Size
}

// Validate returns an error wrapping ErrInvalidSquare when the square lies
// off the board.
func (s Square) Validate() error {
	if !s.Valid() {
		return fmt.Errorf("%w: file %d, rank %d is off the board", ErrInvalidSquare, s.File, s.Rank)
	}
	return nil
}

// Offset returns the square reached by applying o to s. The result may lie
// off the board; check Valid before using it.
func (s Square) Offset(o Offset) Square {
	return Square{File: s.File + o.DFile, Rank: s.Rank + o.DRank}
}

// Neighbors returns the squares a knight on s can reach in one move, in
// KnightOffsets order with off-board destinations dropped. Corner squares
// yield two neighbors, central squares all eight. The square s must itself
// be on the board.
func Neighbors(s Square) []Square {
	neighbors := make([]Square, 0, len(KnightOffsets))
	for _, o := range KnightOffsets {
		if n := s.Offset(o); n.Valid() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// AllSquares returns every square on the board in file-major order: A1-A8,
// then B1-B8, through H8.
func AllSquares() []Square {
	squares := make([]Square, 0, Size*Size)
	for file := 0; file < Size; file++ {
		for rank := 0; rank < Size; rank++ {
			squares = append(squares, Square{File: file, Rank: rank})
		}
	}
	return squares
}
