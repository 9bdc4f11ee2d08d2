package board

import (
	"testing"
)

func TestPieceSymbols(t *testing.T) {
	for _, s := range []string{"K", "Q", "R", "B", "N", "P", "k", "q", "r", "b", "n", "p"} {
		p, ok := PieceFromSymbol(s)
		if !ok {
			t.Errorf("PieceFromSymbol(%q) rejected a canonical symbol", s)
			continue
		}
		if p.Symbol() != s {
			t.Errorf("Symbol round-trip: got %q, want %q", p.Symbol(), s)
		}
	}

	p, ok := PieceFromSymbol(EmptySymbol)
	if !ok || p != NoPiece {
		t.Errorf("PieceFromSymbol(empty) = %v, %v; want NoPiece, true", p, ok)
	}

	for _, s := range []string{"x", "KK", "invalid-piece", " ", "."} {
		if _, ok := PieceFromSymbol(s); ok {
			t.Errorf("PieceFromSymbol(%q) accepted a non-canonical symbol", s)
		}
	}
}

func TestPieceColorAndType(t *testing.T) {
	if WhiteKing.Color() != White || WhiteKing.Type() != King {
		t.Errorf("WhiteKing decomposed to %v %v", WhiteKing.Color(), WhiteKing.Type())
	}
	if BlackKnight.Color() != Black || BlackKnight.Type() != Knight {
		t.Errorf("BlackKnight decomposed to %v %v", BlackKnight.Color(), BlackKnight.Type())
	}
	if NoPiece.Color() != NoColor || NoPiece.Type() != NoPieceType {
		t.Error("NoPiece should have no color and no type")
	}
	if Piece(13).Valid() {
		t.Error("Piece(13) should not be valid")
	}
}

func TestSquares(t *testing.T) {
	tests := []struct {
		sq   Square
		name string
		row  int
		col  int
	}{
		{A5, "a5", 0, 0},
		{D5, "d5", 0, 3},
		{C1, "c1", 4, 2},
		{D1, "d1", 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sq.String() != tt.name {
				t.Errorf("String() = %s, want %s", tt.sq.String(), tt.name)
			}
			if tt.sq.Row() != tt.row || tt.sq.Col() != tt.col {
				t.Errorf("Row/Col = %d/%d, want %d/%d", tt.sq.Row(), tt.sq.Col(), tt.row, tt.col)
			}
			parsed, err := ParseSquare(tt.name)
			if err != nil {
				t.Fatalf("ParseSquare(%s) failed: %v", tt.name, err)
			}
			if parsed != tt.sq {
				t.Errorf("ParseSquare(%s) = %d, want %d", tt.name, parsed, tt.sq)
			}
		})
	}

	for _, s := range []string{"e1", "a6", "a0", "a", ""} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) should fail", s)
		}
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	placements := []string{
		"4/4/4/4/4",
		"2k1/4/4/4/2K1",
		"1kqr/bnpp/p1PP/PPNB/RQKB",
	}

	for _, placement := range placements {
		t.Run(placement, func(t *testing.T) {
			b, err := ParsePlacement(placement)
			if err != nil {
				t.Fatalf("ParsePlacement failed: %v", err)
			}
			if got := b.Placement(); got != placement {
				t.Errorf("Placement() = %s, want %s", got, placement)
			}
		})
	}
}

func TestParsePlacementPieces(t *testing.T) {
	b, err := ParsePlacement("2k1/4/4/4/2K1")
	if err != nil {
		t.Fatalf("ParsePlacement failed: %v", err)
	}

	if b.PieceAt(C5) != BlackKing {
		t.Errorf("c5 = %v, want k", b.PieceAt(C5))
	}
	if b.PieceAt(C1) != WhiteKing {
		t.Errorf("c1 = %v, want K", b.PieceAt(C1))
	}
	if b.Count() != 2 {
		t.Errorf("Count() = %d, want 2", b.Count())
	}

	t.Log("Parsed board:")
	t.Log(b)
}

func TestParsePlacementErrors(t *testing.T) {
	bad := []string{
		"",
		"4/4/4/4",
		"4/4/4/4/4/4",
		"5/4/4/4/4",
		"3/4/4/4/4",
		"kkkkk/4/4/4/4",
		"x3/4/4/4/4",
		"22/4/4/4/4/",
	}

	for _, placement := range bad {
		if _, err := ParsePlacement(placement); err == nil {
			t.Errorf("ParsePlacement(%q) should fail", placement)
		}
	}
}

func TestBoardRows(t *testing.T) {
	b := Empty()
	b.SetPiece(C5, BlackKing)
	b.SetPiece(C1, WhiteKing)

	rows := b.Rows()
	if len(rows) != Rows {
		t.Fatalf("Rows() returned %d rows", len(rows))
	}
	for r, row := range rows {
		if len(row) != Cols {
			t.Fatalf("row %d has %d cells", r, len(row))
		}
	}
	if rows[0][2] != "k" || rows[4][2] != "K" || rows[2][1] != EmptySymbol {
		t.Errorf("unexpected wire rows: %v", rows)
	}

	other := Empty()
	if b.Equal(other) {
		t.Error("boards with different pieces compared equal")
	}
	other.SetPiece(C5, BlackKing)
	other.SetPiece(C1, WhiteKing)
	if !b.Equal(other) {
		t.Error("identical boards compared unequal")
	}
}
