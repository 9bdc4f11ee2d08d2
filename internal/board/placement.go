package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePlacement parses a FEN-style piece placement for the 5x4 board:
// rows top to bottom separated by '/', digits 1-4 for runs of empty squares.
// Example: "1kqr/bnpp/p1PP/PPNB/RQKB".
func ParsePlacement(placement string) (Board, error) {
	b := Empty()

	rows := strings.Split(strings.TrimSpace(placement), "/")
	if len(rows) != Rows {
		return b, fmt.Errorf("invalid placement: need %d rows, got %d", Rows, len(rows))
	}

	for r, rowStr := range rows {
		col := 0

		for _, c := range rowStr {
			if col >= Cols {
				return b, fmt.Errorf("too many squares in row %d", r+1)
			}

			if c >= '1' && c <= '0'+Cols {
				// Skip empty squares
				col += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if c > 0x7f || piece == NoPiece {
				return b, fmt.Errorf("invalid piece character: %c", c)
			}
			b[r][col] = piece
			col++
		}

		if col != Cols {
			return b, fmt.Errorf("invalid number of squares in row %d: got %d", r+1, col)
		}
	}

	return b, nil
}

// Placement returns the FEN-style placement string of the board.
func (b Board) Placement() string {
	var sb strings.Builder

	for r := range b {
		empty := 0
		for _, p := range b[r] {
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r < Rows-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
