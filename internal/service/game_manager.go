// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameStore persists game records between restarts.
type GameStore interface {
	SaveGame(record model.GameRecord) error
	LoadGame(id string) (model.GameRecord, error)
}

type GameManager struct {
	games map[string]*model.Game
	store GameStore
	mu    sync.RWMutex
}

// NewGameManager builds a manager. store may be nil, in which case games
// live in memory only.
func NewGameManager(store GameStore) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		store: store,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	return gm.persist(game)
}

// GetGame returns the live game, loading it from the store when it is not
// in memory.
func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game, nil
	}
	if gm.store == nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	record, err := gm.store.LoadGame(gameID)
	if errors.Is(err, storage.ErrGameNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	restored, err := model.RestoreGame(record)
	if err != nil {
		return nil, err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	// Another request may have restored it first
	if game, exists := gm.games[gameID]; exists {
		return game, nil
	}
	gm.games[gameID] = restored
	log.Infof("restored game %s from storage", gameID)
	return restored, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	return color, gm.persist(game)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) SelectPiece(gameID string, playerID string, row, column int) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	if err := game.Select(playerID, row, column); err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, row, column int) (*model.MoveResult, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	result, err := game.MakeMove(playerID, row, column)
	if err != nil {
		return nil, err
	}
	return result, gm.persist(game)
}

func (gm *GameManager) Promote(gameID string, playerID string, pieceType model.PieceType) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	if err := game.Promote(playerID, pieceType); err != nil {
		return err
	}
	return gm.persist(game)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}

// SendError forwards an error message to one player's websocket.
func (gm *GameManager) SendError(gameID string, playerID string, message string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.SendError(playerID, message)
}

func (gm *GameManager) persist(game *model.Game) error {
	if gm.store == nil {
		return nil
	}
	if err := gm.store.SaveGame(game.Record()); err != nil {
		log.Errorf("failed to persist game %s: %v", game.ID, err)
		return fmt.Errorf("persist game %s: %w", game.ID, err)
	}
	return nil
}
