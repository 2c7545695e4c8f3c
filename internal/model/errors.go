package model

import "errors"

// Rule errors. All of them leave the board as it was before the call.
var (
	ErrIllegalSquare = errors.New("square is outside the board")
	ErrNoPiece       = errors.New("square is unoccupied")
	ErrInvalidMove   = errors.New("illegal move")
	ErrKingInCheck   = errors.New("move leaves the king in check")
	ErrNoPromotion   = errors.New("no pawn is awaiting promotion")
)

// Session errors.
var (
	ErrNotYourTurn     = errors.New("not your turn")
	ErrPlayerNotInGame = errors.New("player not in game")
	ErrGameFull        = errors.New("game is full")
)
