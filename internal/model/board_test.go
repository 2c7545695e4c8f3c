package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// put places a new piece on a 0-based cell and returns it.
func put(t *testing.T, b *Board, row, column int, pieceType PieceType, color PlayerColor) *Piece {
	t.Helper()
	piece := NewPiece(pieceType, color)
	if err := b.Place(row, column, piece); err != nil {
		t.Fatalf("Place(%d, %d): %v", row, column, err)
	}
	return piece
}

func pieceAt(row, column int, pieceType PieceType, color PlayerColor) *Piece {
	return &Piece{Type: pieceType, Color: color, Row: row, Column: column}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name        string
		row, column int
		want        *Piece
	}{
		{"white rook a1", 0, 0, pieceAt(0, 0, Rook, PlayerColorWhite)},
		{"white king e1", 0, 4, pieceAt(0, 4, King, PlayerColorWhite)},
		{"white pawn d2", 1, 3, pieceAt(1, 3, Pawn, PlayerColorWhite)},
		{"black queen d8", 7, 3, pieceAt(7, 3, Queen, PlayerColorBlack)},
		{"black rook h8", 7, 7, pieceAt(7, 7, Rook, PlayerColorBlack)},
		{"black pawn a7", 6, 0, pieceAt(6, 0, Pawn, PlayerColorBlack)},
		{"empty centre", 4, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.At(tt.row, tt.column)
			if err != nil {
				t.Fatalf("At(%d, %d): %v", tt.row, tt.column, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("At(%d, %d) mismatch (-want +got):\n%s", tt.row, tt.column, diff)
			}
		})
	}

	if len(b.pieces()) != 32 {
		t.Errorf("piece count = %d; want 32", len(b.pieces()))
	}
	if b.EnPassantSquare() != nil {
		t.Error("new board has an en passant square")
	}
}

func TestBoardBounds(t *testing.T) {
	b := NewEmptyBoard()

	for _, sq := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {12, 4}} {
		if _, err := b.At(sq[0], sq[1]); !errors.Is(err, ErrIllegalSquare) {
			t.Errorf("At(%d, %d) error = %v; want ErrIllegalSquare", sq[0], sq[1], err)
		}
		if err := b.Place(sq[0], sq[1], NewPiece(Pawn, PlayerColorWhite)); !errors.Is(err, ErrIllegalSquare) {
			t.Errorf("Place(%d, %d) error = %v; want ErrIllegalSquare", sq[0], sq[1], err)
		}
	}
}

func TestPlace(t *testing.T) {
	b := NewEmptyBoard()
	knight := put(t, b, 2, 5, Knight, PlayerColorBlack)

	if knight.Row != 2 || knight.Column != 5 {
		t.Errorf("knight at (%d,%d); want (2,5)", knight.Row, knight.Column)
	}

	t.Run("moving updates coordinates", func(t *testing.T) {
		b.Place(2, 5, nil)
		b.Place(4, 4, knight)
		if knight.Row != 4 || knight.Column != 4 {
			t.Errorf("knight at (%d,%d); want (4,4)", knight.Row, knight.Column)
		}
		if got, _ := b.At(2, 5); got != nil {
			t.Errorf("old cell holds %v", got)
		}
	})

	t.Run("overwriting leaves the old occupant alone", func(t *testing.T) {
		pawn := put(t, b, 4, 4, Pawn, PlayerColorWhite)
		if knight.Row != 4 || knight.Column != 4 {
			t.Errorf("displaced knight moved to (%d,%d)", knight.Row, knight.Column)
		}
		if got, _ := b.At(4, 4); got != pawn {
			t.Errorf("At(4, 4) = %v; want the pawn", got)
		}
	})
}

func TestGetRowAndColumn(t *testing.T) {
	b := NewBoard()

	row := b.GetRow(0)
	if len(row) != Columns {
		t.Fatalf("len(GetRow(0)) = %d; want %d", len(row), Columns)
	}
	if !row[0].Equal(pieceAt(0, 0, Rook, PlayerColorWhite)) {
		t.Errorf("GetRow(0)[0] = %v; want white rook", row[0])
	}
	if diff := cmp.Diff(make([]*Piece, Columns), b.GetRow(4)); diff != "" {
		t.Errorf("GetRow(4) mismatch (-want +got):\n%s", diff)
	}

	column := b.GetColumn(0)
	want := []*Piece{
		pieceAt(0, 0, Rook, PlayerColorWhite),
		pieceAt(1, 0, Pawn, PlayerColorWhite),
		nil, nil, nil, nil,
		pieceAt(6, 0, Pawn, PlayerColorBlack),
		pieceAt(7, 0, Rook, PlayerColorBlack),
	}
	if diff := cmp.Diff(want, column); diff != "" {
		t.Errorf("GetColumn(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestGetDiagonals(t *testing.T) {
	b := NewBoard()

	t.Run("corner", func(t *testing.T) {
		diagonals := b.GetDiagonals(0, 0)
		if len(diagonals[0]) != 1 || !diagonals[0][0].Equal(pieceAt(0, 0, Rook, PlayerColorWhite)) {
			t.Errorf("\\ diagonal = %v; want just the a1 rook", diagonals[0])
		}
		rising := diagonals[1]
		if len(rising) != 8 {
			t.Fatalf("len(/ diagonal) = %d; want 8", len(rising))
		}
		checks := map[int]*Piece{
			0: pieceAt(0, 0, Rook, PlayerColorWhite),
			1: pieceAt(1, 1, Pawn, PlayerColorWhite),
			6: pieceAt(6, 6, Pawn, PlayerColorBlack),
			7: pieceAt(7, 7, Rook, PlayerColorBlack),
		}
		for i, want := range checks {
			if !rising[i].Equal(want) {
				t.Errorf("/ diagonal[%d] = %v; want %v", i, rising[i], want)
			}
		}
	})

	t.Run("middle of board", func(t *testing.T) {
		diagonals := b.GetDiagonals(5, 1)
		falling, rising := diagonals[0], diagonals[1]

		if len(falling) != 7 {
			t.Fatalf("len(\\ diagonal) = %d; want 7", len(falling))
		}
		if !falling[0].Equal(pieceAt(0, 6, Knight, PlayerColorWhite)) {
			t.Errorf("\\ diagonal[0] = %v; want white knight g1", falling[0])
		}
		if !falling[1].Equal(pieceAt(1, 5, Pawn, PlayerColorWhite)) {
			t.Errorf("\\ diagonal[1] = %v; want white pawn f2", falling[1])
		}
		if !falling[6].Equal(pieceAt(6, 0, Pawn, PlayerColorBlack)) {
			t.Errorf("\\ diagonal[6] = %v; want black pawn a7", falling[6])
		}

		want := []*Piece{nil, nil, pieceAt(6, 2, Pawn, PlayerColorBlack), pieceAt(7, 3, Queen, PlayerColorBlack)}
		if diff := cmp.Diff(want, rising); diff != "" {
			t.Errorf("/ diagonal mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestKingInCheck(t *testing.T) {
	tests := []struct {
		name     string
		attacker PieceType
		row, col int
		want     bool
	}{
		{"queen on file", Queen, 4, 0, true},
		{"rook on file", Rook, 4, 0, true},
		{"rook on rank", Rook, 0, 4, true},
		{"bishop on diagonal", Bishop, 4, 4, true},
		{"knight jump", Knight, 2, 1, true},
		{"pawn diagonal", Pawn, 1, 1, false},
		{"knight out of range", Knight, 3, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEmptyBoard()
			put(t, b, 0, 0, King, PlayerColorBlack)
			put(t, b, tt.row, tt.col, tt.attacker, PlayerColorWhite)
			if got := b.KingInCheck(PlayerColorBlack); got != tt.want {
				t.Errorf("KingInCheck(black) = %v; want %v", got, tt.want)
			}
		})
	}

	t.Run("empty board", func(t *testing.T) {
		b := NewEmptyBoard()
		put(t, b, 0, 0, King, PlayerColorBlack)
		if b.KingInCheck(PlayerColorBlack) {
			t.Error("lone king reported in check")
		}
	})

	t.Run("several pieces none checking", func(t *testing.T) {
		b := NewEmptyBoard()
		put(t, b, 1, 1, King, PlayerColorBlack)
		put(t, b, 5, 4, Bishop, PlayerColorWhite)
		put(t, b, 0, 2, Rook, PlayerColorWhite)
		put(t, b, 6, 4, Queen, PlayerColorWhite)
		if b.KingInCheck(PlayerColorBlack) {
			t.Error("KingInCheck(black) = true; want false")
		}
	})

	t.Run("own pieces never check", func(t *testing.T) {
		b := NewEmptyBoard()
		put(t, b, 0, 0, King, PlayerColorWhite)
		put(t, b, 4, 0, Rook, PlayerColorWhite)
		if b.KingInCheck(PlayerColorWhite) {
			t.Error("KingInCheck(white) = true; want false")
		}
	})

	t.Run("no king", func(t *testing.T) {
		b := NewEmptyBoard()
		put(t, b, 4, 0, Rook, PlayerColorWhite)
		if b.KingInCheck(PlayerColorBlack) {
			t.Error("KingInCheck without a king = true")
		}
	})
}

func TestCanTargetPawnAttacks(t *testing.T) {
	b := NewEmptyBoard()
	put(t, b, 2, 3, Pawn, PlayerColorWhite)

	tests := []struct {
		row, column int
		want        bool
	}{
		{3, 4, true},
		{3, 2, true},
		{3, 3, false}, // pushes do not attack
		{4, 3, false},
		{1, 4, false}, // never backwards
	}
	for _, tt := range tests {
		if got := b.CanTarget(PlayerColorBlack, tt.row, tt.column); got != tt.want {
			t.Errorf("CanTarget(black, %d, %d) = %v; want %v", tt.row, tt.column, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	b := NewBoard()
	b.SetEnPassantSquare(&Square{Row: 2, Column: 4, Color: PlayerColorWhite})
	if _, err := b.Locate(2, 5); err != nil {
		t.Fatal(err)
	}

	clone := b.Clone()
	if diff := cmp.Diff(b.Snapshot(), clone.Snapshot()); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}
	if clone.PieceToMove() == b.PieceToMove() || !clone.PieceToMove().Equal(b.PieceToMove()) {
		t.Error("clone should carry its own copy of the located piece")
	}

	clone.Place(1, 4, nil)
	if got, _ := b.At(1, 4); got == nil {
		t.Error("clearing a cell on the clone changed the original")
	}
}
