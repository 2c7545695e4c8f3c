package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// ParsePieceType accepts the lower-case piece names used on the wire.
func ParsePieceType(s string) (PieceType, bool) {
	switch t := PieceType(s); t {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return t, true
	}
	return "", false
}

// Piece is a single chessman. Row and Column are 0-based and always match the
// board cell holding the piece; only Board.Place changes them.
type Piece struct {
	Type    PieceType   `json:"type"`
	Color   PlayerColor `json:"color"`
	Row     int         `json:"row"`
	Column  int         `json:"column"`
	Moved   bool        `json:"moved"`
	Checked bool        `json:"checked"`
}

func NewPiece(pieceType PieceType, color PlayerColor) *Piece {
	return &Piece{Type: pieceType, Color: color}
}

// Equal reports structural equality: same type, square and color.
func (p *Piece) Equal(other *Piece) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Type == other.Type &&
		p.Row == other.Row &&
		p.Column == other.Column &&
		p.Color == other.Color
}

func (p *Piece) String() string {
	if p == nil {
		return "empty"
	}
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type, positionOf(p.Row, p.Column))
}

// Position returns the piece's 1-based square.
func (p *Piece) Position() Position {
	return positionOf(p.Row, p.Column)
}

// Position is a 1-based square as seen by callers: Row 1 is white's back rank,
// Column 1 is the leftmost file.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func positionOf(row, column int) Position {
	return Position{Row: row + 1, Column: column + 1}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// Square records the en passant target: the cell a pawn skipped over and the
// color of that pawn. It is not a board cell of its own.
type Square struct {
	Row    int         `json:"row"`
	Column int         `json:"column"`
	Color  PlayerColor `json:"color"`
}
