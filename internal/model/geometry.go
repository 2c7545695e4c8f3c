package model

// Line scanning shared by the sliding pieces. Nothing here mutates the board.

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// validLateralMove reports whether piece can slide along its row or column to
// (row, column).
func validLateralMove(piece *Piece, row, column int, b *Board) bool {
	if (piece.Row == row) == (piece.Column == column) {
		return false
	}

	var line []*Piece
	var from, to int
	if piece.Row != row {
		line, from, to = b.GetColumn(column), piece.Row, row
	} else {
		line, from, to = b.GetRow(row), piece.Column, column
	}
	return openPath(piece, extractMoveSquares(line, from, to))
}

// validDiagonalMove reports whether piece can slide diagonally to (row, column).
func validDiagonalMove(piece *Piece, row, column int, b *Board) bool {
	rowDiff, columnDiff := row-piece.Row, column-piece.Column
	if rowDiff == 0 || abs(rowDiff) != abs(columnDiff) {
		return false
	}

	diagonals := b.GetDiagonals(piece.Row, piece.Column)
	var line []*Piece
	var from int
	if sign(rowDiff) == sign(columnDiff) {
		line = diagonals[1]
		from = min(piece.Row, piece.Column)
	} else {
		line = diagonals[0]
		from = piece.Row - max(0, piece.Row+piece.Column-(Columns-1))
	}
	return openPath(piece, extractMoveSquares(line, from, from+rowDiff))
}

// extractMoveSquares returns the cells of line a piece at index from crosses
// to reach index to, nearest first and ending with the destination.
func extractMoveSquares(line []*Piece, from, to int) []*Piece {
	if to > from {
		return line[from+1 : to+1]
	}
	squares := make([]*Piece, 0, from-to)
	for i := from - 1; i >= to; i-- {
		squares = append(squares, line[i])
	}
	return squares
}

// openPath holds when every square before the destination is empty and the
// destination is empty or holds an opposing piece.
func openPath(piece *Piece, squares []*Piece) bool {
	last := len(squares) - 1
	for i, occupant := range squares {
		if occupant == nil {
			continue
		}
		if i != last || occupant.Color == piece.Color {
			return false
		}
	}
	return true
}

// emptyOrCapture is the occupancy rule for pieces that do not slide.
func emptyOrCapture(piece *Piece, row, column int, b *Board) bool {
	occupant := b.at(row, column)
	return occupant == nil || occupant.Color != piece.Color
}
