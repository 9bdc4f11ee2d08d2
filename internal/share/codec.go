package share

import (
	"lukechampine.com/uint128"

	"github.com/hailam/minishare/internal/board"
)

// BoardIndex is the mixed-radix number of a board: one base-13 digit per
// square, square A5 most significant. It needs up to 75 bits.
type BoardIndex = uint128.Uint128

// digitRadix is the number of distinct square contents.
const digitRadix = 13

// codeSpace is Base^MaxCodeLength (2^72), the first index that does not fit
// in a sharing code.
var codeSpace = uint128.New(0, 1<<8)

// pieceDigits is the square-content to digit table. It is part of the code
// format: changing it invalidates every code already handed out.
var pieceDigits = [...]uint8{
	board.NoPiece:     0,
	board.WhiteKing:   1,
	board.WhiteQueen:  2,
	board.WhiteRook:   3,
	board.WhiteBishop: 4,
	board.WhiteKnight: 5,
	board.WhitePawn:   6,
	board.BlackKing:   7,
	board.BlackQueen:  8,
	board.BlackRook:   9,
	board.BlackBishop: 10,
	board.BlackKnight: 11,
	board.BlackPawn:   12,
}

// digitPieces is the inverse of pieceDigits.
var digitPieces = [digitRadix]board.Piece{
	0:  board.NoPiece,
	1:  board.WhiteKing,
	2:  board.WhiteQueen,
	3:  board.WhiteRook,
	4:  board.WhiteBishop,
	5:  board.WhiteKnight,
	6:  board.WhitePawn,
	7:  board.BlackKing,
	8:  board.BlackQueen,
	9:  board.BlackRook,
	10: board.BlackBishop,
	11: board.BlackKnight,
	12: board.BlackPawn,
}

// Encode validates the wire form of a board and returns its sharing code.
func Encode(rows [][]string) (string, error) {
	b, err := ValidateBoard(rows)
	if err != nil {
		return "", err
	}
	return EncodeBoard(b)
}

// EncodeBoard returns the sharing code of b. It fails with CodeOverflow when
// the board index needs more than MaxCodeLength symbols.
func EncodeBoard(b board.Board) (string, error) {
	idx, err := IndexOf(b)
	if err != nil {
		return "", err
	}
	if idx.Cmp(codeSpace) >= 0 {
		return "", newError(CodeOverflow, "board index %s needs more than %d symbols", idx, MaxCodeLength)
	}

	var buf [MaxCodeLength]byte
	pos := len(buf)
	for {
		q, r := idx.QuoRem64(uint64(Base))
		pos--
		buf[pos] = CharAt(int(r))
		idx = q
		if idx.IsZero() {
			break
		}
	}

	return string(buf[pos:]), nil
}

// IndexOf folds the squares of b into its BoardIndex, A5 first.
func IndexOf(b board.Board) (BoardIndex, error) {
	if err := CheckBoard(b); err != nil {
		return uint128.Zero, err
	}

	idx := uint128.Zero
	for sq := board.A5; sq < board.NoSquare; sq++ {
		idx = idx.Mul64(digitRadix).Add64(uint64(pieceDigits[b.PieceAt(sq)]))
	}
	return idx, nil
}

// Decode validates a sharing code and returns the board it encodes.
func Decode(code string) (board.Board, error) {
	code, err := ValidateCode(code)
	if err != nil {
		return board.Empty(), err
	}

	idx := uint128.Zero
	for i := 0; i < len(code); i++ {
		v, _ := ValueOf(code[i])
		idx = idx.Mul64(uint64(Base)).Add64(uint64(v))
	}

	return BoardAt(idx)
}

// BoardAt expands a BoardIndex back into a board. Only indexes that fit in a
// sharing code are accepted.
func BoardAt(idx BoardIndex) (board.Board, error) {
	b := board.Empty()
	if idx.Cmp(codeSpace) >= 0 {
		return b, newError(CodeOverflow, "board index %s needs more than %d symbols", idx, MaxCodeLength)
	}

	// Least significant digit is the last square.
	for sq := board.NoSquare; sq > board.A5; sq-- {
		q, digit := idx.QuoRem64(digitRadix)
		b.SetPiece(sq-1, digitPieces[digit])
		idx = q
	}

	return b, nil
}

// ComparePositions reports whether a and b are both 5x4 boards with equal
// symbols on every square.
func ComparePositions(a, b [][]string) bool {
	if !wellShaped(a) || !wellShaped(b) {
		return false
	}
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

func wellShaped(rows [][]string) bool {
	if len(rows) != board.Rows {
		return false
	}
	for _, row := range rows {
		if len(row) != board.Cols {
			return false
		}
	}
	return true
}
