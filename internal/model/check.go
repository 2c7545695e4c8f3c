package model

// CanTarget reports whether any piece not belonging to player could capture
// a piece of player's standing on the 0-based cell (row, column).
func (b *Board) CanTarget(player PlayerColor, row, column int) bool {
	for _, piece := range b.pieces() {
		if piece.Color != player && attacks(piece, row, column, b) {
			return true
		}
	}
	return false
}

// KingInCheck reports whether player's king is attacked. A board without
// that king is never in check.
func (b *Board) KingInCheck(player PlayerColor) bool {
	king := b.findKing(player)
	if king == nil {
		return false
	}
	return b.CanTarget(player, king.Row, king.Column)
}

// refreshCheckFlags runs after a committed move by mover: its own king is
// safe by construction, the opponent's may now be attacked.
func (b *Board) refreshCheckFlags(mover PlayerColor) {
	if king := b.findKing(mover); king != nil {
		king.Checked = false
	}
	if king := b.findKing(mover.Opponent()); king != nil {
		king.Checked = b.CanTarget(king.Color, king.Row, king.Column)
	}
}
