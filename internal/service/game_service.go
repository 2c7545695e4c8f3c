package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) SelectPiece(gameID string, playerID string, row, column int) (model.GameState, error) {
	return gs.gameManager.SelectPiece(gameID, playerID, row, column)
}

func (gs *GameService) HandleMove(gameID string, playerID string, row, column int) (*model.MoveResult, error) {
	return gs.gameManager.MakeMove(gameID, playerID, row, column)
}

func (gs *GameService) Promote(gameID string, playerID string, piece string) error {
	pieceType, ok := model.ParsePieceType(piece)
	if !ok {
		return fmt.Errorf("%w: unknown piece %q", model.ErrInvalidMove, piece)
	}
	return gs.gameManager.Promote(gameID, playerID, pieceType)
}

// CheckSeat returns nil when playerID holds a seat in gameID.
func (gs *GameService) CheckSeat(gameID string, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	if !game.IsPlayerInGame(playerID) {
		return model.ErrPlayerNotInGame
	}
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) SendError(gameID string, playerID string, message string) {
	gs.gameManager.SendError(gameID, playerID, message)
}
