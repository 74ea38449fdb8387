// Package board models the 8x8 chessboard and the knight's movement on it.
//
// Squares use standard algebraic notation: a file letter A-H followed by a
// rank digit 1-8, so "A1" is the lower-left corner and "H8" the upper-right.
// Internally a Square holds zero-based file and rank indexes, which keeps
// move arithmetic simple and leaves notation concerns to Parse and String.
//
// # Usage
//
//	sq, err := board.Parse("D4")
//	if err != nil {
//		// err wraps board.ErrInvalidSquare
//	}
//	for _, n := range board.Neighbors(sq) {
//		fmt.Println(n) // C6, E6, B5, F5, B3, F3, C2, E2
//	}
//
// Neighbors returns destinations in the fixed KnightOffsets order, so every
// caller that walks the move graph sees candidates in the same sequence.
// Parsing is strict: lowercase files, whitespace, and out-of-range
// coordinates are all rejected with errors wrapping ErrInvalidSquare.
package board
