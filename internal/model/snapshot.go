package model

import "fmt"

// BoardSnapshot is a plain value copy of a board, used for state pushes and
// persistence.
type BoardSnapshot struct {
	Pieces           []Piece        `json:"pieces"`
	EnPassant        *Square        `json:"enPassant"`
	CapturedPieces   CapturedPieces `json:"capturedPieces"`
	PendingPromotion *Position      `json:"pendingPromotion"`
}

func (b *Board) Snapshot() BoardSnapshot {
	snapshot := BoardSnapshot{
		Pieces:         make([]Piece, 0, Rows*Columns),
		EnPassant:      b.EnPassantSquare(),
		CapturedPieces: b.CapturedPieces(),
	}
	for _, piece := range b.pieces() {
		snapshot.Pieces = append(snapshot.Pieces, *piece)
	}
	if b.pendingPromotion != nil {
		square := b.pendingPromotion.Position()
		snapshot.PendingPromotion = &square
	}
	return snapshot
}

// RestoreBoard rebuilds a board from a snapshot.
func RestoreBoard(snapshot BoardSnapshot) (*Board, error) {
	board := NewEmptyBoard()
	for i := range snapshot.Pieces {
		piece := snapshot.Pieces[i]
		if _, ok := ParsePieceType(string(piece.Type)); !ok {
			return nil, fmt.Errorf("restore board: unknown piece type %q", piece.Type)
		}
		if !inBounds(piece.Row, piece.Column) {
			return nil, fmt.Errorf("restore board: %w", boundsError(piece.Row, piece.Column))
		}
		if board.at(piece.Row, piece.Column) != nil {
			return nil, fmt.Errorf("restore board: two pieces on (%d,%d)", piece.Row+1, piece.Column+1)
		}
		board.place(piece.Row, piece.Column, &piece)
	}
	for color, pieces := range snapshot.CapturedPieces {
		board.captured[color] = append(make([]PieceType, 0, len(pieces)), pieces...)
	}
	if snapshot.EnPassant != nil {
		square := *snapshot.EnPassant
		board.enPassant = &square
	}
	if p := snapshot.PendingPromotion; p != nil {
		pawn, err := board.occupant(p.Row, p.Column)
		if err != nil {
			return nil, fmt.Errorf("restore board: pending promotion: %w", err)
		}
		board.pendingPromotion = pawn
	}
	return board, nil
}
