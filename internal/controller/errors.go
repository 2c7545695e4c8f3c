package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// errorCode maps domain errors to a status code and a stable code string
// clients can switch on.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound, "game_not_found"
	case errors.Is(err, model.ErrIllegalSquare):
		return fiber.StatusUnprocessableEntity, "illegal_square"
	case errors.Is(err, model.ErrNoPiece):
		return fiber.StatusUnprocessableEntity, "no_piece"
	case errors.Is(err, model.ErrInvalidMove):
		return fiber.StatusUnprocessableEntity, "invalid_move"
	case errors.Is(err, model.ErrKingInCheck):
		return fiber.StatusUnprocessableEntity, "king_in_check"
	case errors.Is(err, model.ErrNoPromotion):
		return fiber.StatusUnprocessableEntity, "no_promotion"
	case errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusConflict, "not_your_turn"
	case errors.Is(err, model.ErrGameFull):
		return fiber.StatusConflict, "game_full"
	case errors.Is(err, model.ErrPlayerNotInGame):
		return fiber.StatusForbidden, "player_not_in_game"
	}
	return fiber.StatusInternalServerError, "internal"
}

func sendError(c *fiber.Ctx, err error) error {
	status, code := errorCode(err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
