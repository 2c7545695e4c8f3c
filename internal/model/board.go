package model

import "fmt"

const (
	Rows    = 8
	Columns = 8
)

// CapturedPieces lists captured piece types keyed by the captured piece's own
// color, in capture order.
type CapturedPieces map[PlayerColor][]PieceType

// Board owns the grid and the per-ply bookkeeping. It does not decide
// legality itself; see moveType and MakeMove.
type Board struct {
	contents         [Rows][Columns]*Piece
	enPassant        *Square
	captured         CapturedPieces
	pieceToMove      *Piece
	pendingPromotion *Piece
}

// NewEmptyBoard returns a board with no pieces on it.
func NewEmptyBoard() *Board {
	return &Board{
		captured: CapturedPieces{
			PlayerColorWhite: make([]PieceType, 0),
			PlayerColorBlack: make([]PieceType, 0),
		},
	}
}

// NewBoard returns the standard starting position, white on rows 0 and 1.
func NewBoard() *Board {
	board := NewEmptyBoard()
	backRank := [Columns]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for column, pieceType := range backRank {
		board.place(0, column, NewPiece(pieceType, PlayerColorWhite))
		board.place(1, column, NewPiece(Pawn, PlayerColorWhite))
		board.place(Rows-2, column, NewPiece(Pawn, PlayerColorBlack))
		board.place(Rows-1, column, NewPiece(pieceType, PlayerColorBlack))
	}
	return board
}

func inBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}

func boundsError(row, column int) error {
	return fmt.Errorf("%w: row %d, column %d", ErrIllegalSquare, row, column)
}

// Place writes piece (or nil) into the cell and moves the piece's stored
// coordinates with it. Whatever occupied the cell before is not touched.
func (b *Board) Place(row, column int, piece *Piece) error {
	if !inBounds(row, column) {
		return boundsError(row, column)
	}
	b.place(row, column, piece)
	return nil
}

func (b *Board) place(row, column int, piece *Piece) {
	b.contents[row][column] = piece
	if piece != nil {
		piece.Row = row
		piece.Column = column
	}
}

// At returns the occupant of a 0-based cell, nil when empty.
func (b *Board) At(row, column int) (*Piece, error) {
	if !inBounds(row, column) {
		return nil, boundsError(row, column)
	}
	return b.contents[row][column], nil
}

func (b *Board) at(row, column int) *Piece {
	return b.contents[row][column]
}

func (b *Board) GetRow(row int) []*Piece {
	line := make([]*Piece, Columns)
	copy(line, b.contents[row][:])
	return line
}

func (b *Board) GetColumn(column int) []*Piece {
	line := make([]*Piece, 0, Rows)
	for row := 0; row < Rows; row++ {
		line = append(line, b.contents[row][column])
	}
	return line
}

// GetDiagonals returns the two diagonals through a cell, each ordered by
// ascending row and including the cell itself. The first is the "\"
// diagonal (row+column constant), the second the "/" diagonal
// (row-column constant).
func (b *Board) GetDiagonals(row, column int) [2][]*Piece {
	var diagonals [2][]*Piece

	r, c := row, column
	for r > 0 && c < Columns-1 {
		r, c = r-1, c+1
	}
	for ; r < Rows && c >= 0; r, c = r+1, c-1 {
		diagonals[0] = append(diagonals[0], b.contents[r][c])
	}

	r, c = row, column
	for r > 0 && c > 0 {
		r, c = r-1, c-1
	}
	for ; r < Rows && c < Columns; r, c = r+1, c+1 {
		diagonals[1] = append(diagonals[1], b.contents[r][c])
	}
	return diagonals
}

// EnPassantSquare returns the square exposed by the previous ply, if any.
func (b *Board) EnPassantSquare() *Square {
	if b.enPassant == nil {
		return nil
	}
	square := *b.enPassant
	return &square
}

// SetEnPassantSquare is used when building positions by hand.
func (b *Board) SetEnPassantSquare(square *Square) {
	b.enPassant = square
}

// CapturedPieces returns a copy of the capture ledger.
func (b *Board) CapturedPieces() CapturedPieces {
	ledger := make(CapturedPieces, len(b.captured))
	for color, pieces := range b.captured {
		ledger[color] = append(make([]PieceType, 0, len(pieces)), pieces...)
	}
	return ledger
}

// PieceToMove is the piece recorded by the last successful Locate.
func (b *Board) PieceToMove() *Piece {
	return b.pieceToMove
}

func (b *Board) findKing(color PlayerColor) *Piece {
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			piece := b.contents[row][column]
			if piece != nil && piece.Type == King && piece.Color == color {
				return piece
			}
		}
	}
	return nil
}

// pieces returns every piece on the board, row by row.
func (b *Board) pieces() []*Piece {
	pieces := make([]*Piece, 0, Rows*Columns)
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			if piece := b.contents[row][column]; piece != nil {
				pieces = append(pieces, piece)
			}
		}
	}
	return pieces
}

// Clone returns a deep copy. The located piece and pending promotion are
// carried over as their copies.
func (b *Board) Clone() *Board {
	clone := &Board{captured: b.CapturedPieces()}
	for _, piece := range b.pieces() {
		copied := *piece
		clone.place(piece.Row, piece.Column, &copied)
	}
	clone.enPassant = b.EnPassantSquare()
	if b.pieceToMove != nil {
		clone.pieceToMove = clone.at(b.pieceToMove.Row, b.pieceToMove.Column)
	}
	if b.pendingPromotion != nil {
		clone.pendingPromotion = clone.at(b.pendingPromotion.Row, b.pendingPromotion.Column)
	}
	return clone
}
