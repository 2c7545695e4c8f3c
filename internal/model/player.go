package model

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

// Opponent returns the other side.
func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// forward is the row direction this color's pawns advance in.
func (c PlayerColor) forward() int {
	if c == PlayerColorWhite {
		return 1
	}
	return -1
}

func (c PlayerColor) pawnStartRow() int {
	if c == PlayerColorWhite {
		return 1
	}
	return Rows - 2
}

func (c PlayerColor) lastRow() int {
	if c == PlayerColorWhite {
		return Rows - 1
	}
	return 0
}
