// Package board holds the Tablut-specific board data model built on top of
// pkg/bitboard: square numbering, piece/color kinds, game results, move
// encoding, Zobrist hashing, and the precomputed neighbor/region/slide tables
// used by move generation and the evaluator.
package board

import (
	"fmt"

	"github.com/tablutai/tablut/pkg/bitboard"
)

// Square is a board square, 0..80, row-major (row = s/9, col = s%9).
type Square = bitboard.Square

const (
	NumSquares = bitboard.NumSquares
	BoardSize  = bitboard.NumRows // 9
)

// NewSquare builds a Square from (row, col), both in [0,8].
func NewSquare(row, col int) Square {
	return bitboard.NewSquare(row, col)
}

// Center is the single throne/center square.
var Center = NewSquare(4, 4)

// Corners are the four escape squares.
var Corners = [4]Square{
	NewSquare(0, 0), NewSquare(0, 8), NewSquare(8, 0), NewSquare(8, 8),
}

// FormatSquare renders algebraic notation such as "e5" (file a-i, rank 1-9).
func FormatSquare(s Square) string {
	return fmt.Sprintf("%c%d", rune('a'+s.Col()), s.Row()+1)
}

// ParseSquare parses algebraic notation such as "e5".
func ParseSquare(str string) (Square, error) {
	if len(str) < 2 || len(str) > 3 {
		return 0, fmt.Errorf("invalid square: %q", str)
	}
	col := int(str[0] - 'a')
	row := 0
	if _, err := fmt.Sscanf(str[1:], "%d", &row); err != nil {
		return 0, fmt.Errorf("invalid square: %q: %v", str, err)
	}
	row--
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return 0, fmt.Errorf("invalid square: %q", str)
	}
	return NewSquare(row, col), nil
}
