package share

import (
	"github.com/hailam/minishare/internal/board"
)

// MaxCodeLength is the longest sharing code the codec produces or accepts.
const MaxCodeLength = 12

// ValidateBoard checks the wire form of a board and converts it to a
// board.Board. It checks shape and symbols only, never chess legality.
// The result shares no memory with rows.
func ValidateBoard(rows [][]string) (board.Board, error) {
	b := board.Empty()

	if len(rows) != board.Rows {
		return b, newError(InvalidBoardShape, "board must have %d rows, got %d", board.Rows, len(rows))
	}
	for r, row := range rows {
		if len(row) != board.Cols {
			return b, newError(InvalidBoardShape, "row %d must have %d cells, got %d", r, board.Cols, len(row))
		}
	}

	for r, row := range rows {
		for c, symbol := range row {
			p, ok := board.PieceFromSymbol(symbol)
			if !ok {
				return b, newError(InvalidPieceSymbol, "invalid piece %q at row %d, column %d", symbol, r, c)
			}
			b[r][c] = p
		}
	}

	return b, nil
}

// CheckBoard verifies that every square of b holds NoPiece or a valid piece.
func CheckBoard(b board.Board) error {
	for sq := board.A5; sq < board.NoSquare; sq++ {
		if p := b.PieceAt(sq); !p.Valid() {
			return newError(InvalidPieceSymbol, "invalid piece value %d on %s", uint8(p), sq)
		}
	}
	return nil
}

// ValidateCode checks that code is a well-formed sharing code: every
// character in the alphabet, 1 to MaxCodeLength characters long, and no
// leading zero symbol unless the code is the single zero symbol.
func ValidateCode(code string) (string, error) {
	for i := 0; i < len(code); i++ {
		if _, ok := ValueOf(code[i]); !ok {
			return "", newError(InvalidCodeCharset, "invalid character %q at position %d", code[i], i)
		}
	}

	if len(code) == 0 || len(code) > MaxCodeLength {
		return "", newError(InvalidCodeLength, "code must be 1 to %d characters, got %d", MaxCodeLength, len(code))
	}

	if len(code) > 1 && code[0] == Alphabet[0] {
		return "", newError(NonCanonicalCode, "code %q has a leading zero symbol", code)
	}

	return code, nil
}
