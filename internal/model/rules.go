package model

type CastleSide string

const (
	CastleKingside  CastleSide = "kingside"
	CastleQueenside CastleSide = "queenside"
)

// Castle names the side castled on and the rook the executor has to move.
type Castle struct {
	Side CastleSide
	Rook *Piece
}

// MoveOutcome is the answer to "can this piece move to (row, column)?".
// Metadata is only set on valid outcomes.
type MoveOutcome struct {
	Valid            bool
	Castle           *Castle
	EnPassantCapture bool
	ExposedEnPassant *Square
	PromotedPawn     bool
}

var invalidMove = MoveOutcome{}

func validIf(ok bool) MoveOutcome {
	return MoveOutcome{Valid: ok}
}

// moveType evaluates piece moving to the 0-based cell (row, column) against
// the current board. It never mutates the board.
func moveType(piece *Piece, row, column int, b *Board) MoveOutcome {
	if !inBounds(row, column) || (piece.Row == row && piece.Column == column) {
		return invalidMove
	}
	switch piece.Type {
	case Pawn:
		return pawnMoveType(piece, row, column, b)
	case Knight:
		return knightMoveType(piece, row, column, b)
	case Bishop:
		return validIf(validDiagonalMove(piece, row, column, b))
	case Rook:
		return validIf(validLateralMove(piece, row, column, b))
	case Queen:
		return validIf(validDiagonalMove(piece, row, column, b) || validLateralMove(piece, row, column, b))
	case King:
		return kingMoveType(piece, row, column, b)
	}
	return invalidMove
}

func knightMoveType(piece *Piece, row, column int, b *Board) MoveOutcome {
	rowDiff, columnDiff := abs(row-piece.Row), abs(column-piece.Column)
	if !(rowDiff == 2 && columnDiff == 1) && !(rowDiff == 1 && columnDiff == 2) {
		return invalidMove
	}
	return validIf(emptyOrCapture(piece, row, column, b))
}

func kingMoveType(piece *Piece, row, column int, b *Board) MoveOutcome {
	if castle, ok := castleMove(piece, row, column, b); ok {
		return MoveOutcome{Valid: true, Castle: castle}
	}
	if abs(row-piece.Row) > 1 || abs(column-piece.Column) > 1 {
		return invalidMove
	}
	return validIf(emptyOrCapture(piece, row, column, b))
}

// castleMove checks the castle that moves king to (row, column), if any.
func castleMove(king *Piece, row, column int, b *Board) (*Castle, bool) {
	if king.Moved || row != king.Row || abs(column-king.Column) != 2 {
		return nil, false
	}

	side, corner, step := CastleKingside, Columns-1, 1
	if column < king.Column {
		side, corner, step = CastleQueenside, 0, -1
	}

	rook := b.at(row, corner)
	if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.Moved {
		return nil, false
	}
	for c := king.Column + step; c != corner; c += step {
		if b.at(row, c) != nil {
			return nil, false
		}
	}

	if king.Checked || b.CanTarget(king.Color, king.Row, king.Column) {
		return nil, false
	}
	for c := king.Column + step; c != column+step; c += step {
		if b.CanTarget(king.Color, row, c) {
			return nil, false
		}
	}
	return &Castle{Side: side, Rook: rook}, true
}

func pawnMoveType(piece *Piece, row, column int, b *Board) MoveOutcome {
	forward := piece.Color.forward()
	advance := (row - piece.Row) * forward
	promoted := row == piece.Color.lastRow()

	if column == piece.Column {
		switch {
		case advance == 1 && b.at(row, column) == nil:
			return MoveOutcome{Valid: true, PromotedPawn: promoted}
		case advance == 2 && piece.Row == piece.Color.pawnStartRow() &&
			b.at(piece.Row+forward, column) == nil && b.at(row, column) == nil:
			return MoveOutcome{
				Valid:            true,
				ExposedEnPassant: &Square{Row: piece.Row + forward, Column: column, Color: piece.Color},
			}
		}
		return invalidMove
	}

	if advance != 1 || abs(column-piece.Column) != 1 {
		return invalidMove
	}
	if occupant := b.at(row, column); occupant != nil {
		if occupant.Color == piece.Color {
			return invalidMove
		}
		return MoveOutcome{Valid: true, PromotedPawn: promoted}
	}
	if ep := b.enPassant; ep != nil && ep.Row == row && ep.Column == column && ep.Color != piece.Color {
		return MoveOutcome{Valid: true, EnPassantCapture: true}
	}
	return invalidMove
}

// attacks reports whether piece could capture an enemy standing on
// (row, column). Pawns attack their forward diagonals whether or not the
// square is occupied and kings never attack by castling.
func attacks(piece *Piece, row, column int, b *Board) bool {
	if piece.Row == row && piece.Column == column {
		return false
	}
	switch piece.Type {
	case Pawn:
		return row-piece.Row == piece.Color.forward() && abs(column-piece.Column) == 1
	case King:
		return abs(row-piece.Row) <= 1 && abs(column-piece.Column) <= 1
	}
	return moveType(piece, row, column, b).Valid
}
