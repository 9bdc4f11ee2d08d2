package board

import "strings"

// Board is a 5x4 grid of squares in row-major order, top row first.
// The zero value is not empty: use Empty to get a board with no pieces.
type Board [Rows][Cols]Piece

// Empty returns a board with every square empty.
func Empty() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = NoPiece
		}
	}
	return b
}

// PieceAt returns the piece on the given square.
func (b *Board) PieceAt(sq Square) Piece {
	return b[sq.Row()][sq.Col()]
}

// SetPiece places a piece (or NoPiece) on the given square.
func (b *Board) SetPiece(sq Square, p Piece) {
	b[sq.Row()][sq.Col()] = p
}

// Equal reports whether both boards hold the same piece on every square.
func (b Board) Equal(other Board) bool {
	return b == other
}

// Count returns the number of occupied squares.
func (b *Board) Count() int {
	n := 0
	for sq := A5; sq < NoSquare; sq++ {
		if !b.PieceAt(sq).IsEmpty() {
			n++
		}
	}
	return n
}

// Rows returns the wire form of the board: 5 rows of 4 symbols, with
// EmptySymbol for empty squares.
func (b Board) Rows() [][]string {
	rows := make([][]string, Rows)
	for r := range b {
		rows[r] = make([]string, Cols)
		for c, p := range b[r] {
			rows[r][c] = p.Symbol()
		}
	}
	return rows
}

// String returns a human-readable representation of the board.
func (b Board) String() string {
	var sb strings.Builder
	for r := range b {
		sb.WriteByte(byte('0' + Rows - r))
		sb.WriteByte(' ')
		for c, p := range b[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d\n")
	return sb.String()
}
