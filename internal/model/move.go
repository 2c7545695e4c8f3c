package model

import "fmt"

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// PromotionContext is returned when a pawn reaches the last rank. The caller
// picks the replacement and passes it to Promote.
type PromotionContext struct {
	Square   Position    `json:"square"`
	Color    PlayerColor `json:"color"`
	Captured []PieceType `json:"captured"`
}

// MoveResult describes a committed move in 1-based coordinates.
type MoveResult struct {
	Piece            PieceType         `json:"piece"`
	Color            PlayerColor       `json:"color"`
	From             Position          `json:"from"`
	To               Position          `json:"to"`
	CapturedPiece    *Piece            `json:"capturedPiece"`
	EnPassantCapture bool              `json:"enPassantCapture"`
	CastleRookMove   *CastleRookMove   `json:"castleRookMove"`
	Promotion        *PromotionContext `json:"promotion"`
}

// Locate resolves a 1-based square and records its occupant as the piece the
// next MakeMove will move.
func (b *Board) Locate(row, column int) (*Piece, error) {
	piece, err := b.occupant(row, column)
	if err != nil {
		return nil, err
	}
	b.pieceToMove = piece
	return piece, nil
}

func (b *Board) occupant(row, column int) (*Piece, error) {
	if !inBounds(row-1, column-1) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrIllegalSquare, row, column)
	}
	piece := b.at(row-1, column-1)
	if piece == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrNoPiece, row, column)
	}
	return piece, nil
}

// MakeMove moves the located piece to the 1-based square (row, column) for
// player. A move that leaves player's king attacked is undone before
// ErrKingInCheck is returned.
func (b *Board) MakeMove(player PlayerColor, row, column int) (*MoveResult, error) {
	piece := b.pieceToMove
	if piece == nil || b.at(piece.Row, piece.Column) != piece {
		return nil, fmt.Errorf("%w: no piece has been located", ErrNoPiece)
	}
	toRow, toColumn := row-1, column-1
	if !inBounds(toRow, toColumn) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrIllegalSquare, row, column)
	}
	if piece.Color != player {
		return nil, fmt.Errorf("%w: %s belongs to %s", ErrInvalidMove, piece, piece.Color)
	}

	outcome := moveType(piece, toRow, toColumn, b)
	if !outcome.Valid {
		return nil, fmt.Errorf("%w: %s to (%d,%d)", ErrInvalidMove, piece, row, column)
	}

	fromRow, fromColumn := piece.Row, piece.Column
	captured := b.at(toRow, toColumn)
	var bypassed *Piece
	bypassedRow := toRow - piece.Color.forward()
	if outcome.EnPassantCapture {
		bypassed = b.at(bypassedRow, toColumn)
		b.place(bypassedRow, toColumn, nil)
	}
	b.place(fromRow, fromColumn, nil)
	b.place(toRow, toColumn, piece)

	if b.KingInCheck(player) {
		b.place(toRow, toColumn, captured)
		b.place(fromRow, fromColumn, piece)
		if outcome.EnPassantCapture {
			b.place(bypassedRow, toColumn, bypassed)
		}
		return nil, fmt.Errorf("%w: %s to (%d,%d)", ErrKingInCheck, piece, row, column)
	}

	result := &MoveResult{
		Piece:            piece.Type,
		Color:            piece.Color,
		From:             positionOf(fromRow, fromColumn),
		To:               positionOf(toRow, toColumn),
		EnPassantCapture: outcome.EnPassantCapture,
	}
	if piece.Type == King || piece.Type == Rook {
		piece.Moved = true
	}
	if captured == nil {
		captured = bypassed
	}
	if captured != nil {
		b.captured[captured.Color] = append(b.captured[captured.Color], captured.Type)
		copied := *captured
		result.CapturedPiece = &copied
	}

	if castle := outcome.Castle; castle != nil {
		rook := castle.Rook
		rookFrom := rook.Position()
		rookColumn := toColumn - 1
		if castle.Side == CastleQueenside {
			rookColumn = toColumn + 1
		}
		b.place(rook.Row, rook.Column, nil)
		b.place(toRow, rookColumn, rook)
		rook.Moved = true
		result.CastleRookMove = &CastleRookMove{From: rookFrom, To: rook.Position()}
	}

	b.enPassant = outcome.ExposedEnPassant
	b.pieceToMove = nil
	b.pendingPromotion = nil
	b.refreshCheckFlags(player)

	if outcome.PromotedPawn {
		b.pendingPromotion = piece
		result.Promotion = &PromotionContext{
			Square:   result.To,
			Color:    player,
			Captured: append(make([]PieceType, 0, len(b.captured[player])), b.captured[player]...),
		}
	}
	return result, nil
}

// Promote replaces the pawn awaiting promotion with pieceType. When the
// player has lost a piece of that type, one entry is taken back off the
// capture ledger.
func (b *Board) Promote(player PlayerColor, pieceType PieceType) (*Piece, error) {
	pawn := b.pendingPromotion
	if pawn == nil || pawn.Color != player || b.at(pawn.Row, pawn.Column) != pawn {
		return nil, ErrNoPromotion
	}
	switch pieceType {
	case Queen, Rook, Bishop, Knight:
	default:
		return nil, fmt.Errorf("%w: cannot promote to %q", ErrInvalidMove, pieceType)
	}

	ledger := b.captured[player]
	for i, lost := range ledger {
		if lost == pieceType {
			b.captured[player] = append(ledger[:i:i], ledger[i+1:]...)
			break
		}
	}

	pawn.Type = pieceType
	pawn.Moved = true
	b.pendingPromotion = nil
	b.refreshCheckFlags(player)
	return pawn, nil
}

// PendingPromotion returns the pawn waiting for a replacement, if any.
func (b *Board) PendingPromotion() *Piece {
	return b.pendingPromotion
}

// LegalMoves lists every 1-based square the piece on (row, column) can move
// to without leaving its own king in check.
func (b *Board) LegalMoves(row, column int) ([]Position, error) {
	piece, err := b.occupant(row, column)
	if err != nil {
		return nil, err
	}

	moves := make([]Position, 0)
	for toRow := 1; toRow <= Rows; toRow++ {
		for toColumn := 1; toColumn <= Columns; toColumn++ {
			if !moveType(piece, toRow-1, toColumn-1, b).Valid {
				continue
			}
			trial := b.Clone()
			if _, err := trial.Locate(row, column); err != nil {
				return nil, err
			}
			if _, err := trial.MakeMove(piece.Color, toRow, toColumn); err == nil {
				moves = append(moves, Position{Row: toRow, Column: toColumn})
			}
		}
	}
	return moves, nil
}
