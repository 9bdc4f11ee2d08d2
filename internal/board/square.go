// Package board implements the 5x4 board used by position sharing.
package board

import "fmt"

// Board dimensions.
const (
	Rows    = 5
	Cols    = 4
	Squares = Rows * Cols
)

// Square represents a square on the board (0-19).
// Row-major from the top-left corner: A5=0, D5=3, A1=16, D1=19.
type Square uint8

// Square constants for all 20 squares.
const (
	A5 Square = iota
	B5
	C5
	D5
	A4
	B4
	C4
	D4
	A3
	B3
	C3
	D3
	A2
	B2
	C2
	D2
	A1
	B1
	C1
	D1
	NoSquare Square = Squares
)

// Row returns the row of the square (0-4, where 0 is the top row).
func (sq Square) Row() int {
	return int(sq) / Cols
}

// Col returns the column of the square (0-3, where 0=a).
func (sq Square) Col() int {
	return int(sq) % Cols
}

// Rank returns the rank number shown to players (1-5, where 5 is the top row).
func (sq Square) Rank() int {
	return Rows - sq.Row()
}

// String returns the algebraic notation for the square (e.g., "c5").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.Col(), sq.Rank())
}

// NewSquare creates a square from row and column (0-indexed, row 0 at the top).
func NewSquare(row, col int) Square {
	return Square(row*Cols + col)
}

// ParseSquare parses algebraic notation (e.g., "c5") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0] - 'a')
	rank := int(s[1] - '0')

	if col < 0 || col >= Cols || rank < 1 || rank > Rows {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(Rows-rank, col), nil
}
