package controller

import (
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		log.Errorf("create game: %v", err)
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}
	log.Infof("player %s joined game %s as %s", playerID, gameID, color)

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) SelectPiece(c *fiber.Ctx) error {
	var square ws.SquarePayload
	if err := c.BodyParser(&square); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid square")
	}
	playerID := c.Locals("playerID").(string)

	gameState, err := gc.gameService.SelectPiece(c.Params("gameId"), playerID, square.Row, square.Column)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var square ws.SquarePayload
	if err := c.BodyParser(&square); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid square")
	}
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	result, err := gc.gameService.HandleMove(gameID, playerID, square.Row, square.Column)
	if err != nil {
		return sendError(c, err)
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"move":  result,
		"state": gameState,
	})
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var promotion ws.PromotePayload
	if err := c.BodyParser(&promotion); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid promotion")
	}
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.Promote(gameID, playerID, promotion.Piece); err != nil {
		return sendError(c, err)
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}
