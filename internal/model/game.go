package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.Mutex
}

// Game wraps one Board with turn order, seats and observers. The mutex
// serializes every move against the board.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	state       GameState
	connections *GameConnections
}

type GamePlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type GameState struct {
	Board            BoardSnapshot `json:"boardState"`
	ToMove           PlayerColor   `json:"toMove"`
	IsCheck          bool          `json:"isCheck"`
	SelectedSquare   *Position     `json:"selectedSquare"`
	LegalMoves       []Position    `json:"legalMoves"`
	PromotionSquare  *Position     `json:"promotionSquare"`
	PromotionChoices []PieceType   `json:"promotionChoices"`
	LastMove         *MoveResult   `json:"lastMove"`
	Players          GamePlayers   `json:"players"`
}

// GameRecord is the persisted form of a game.
type GameRecord struct {
	ID       string        `json:"id"`
	Players  GamePlayers   `json:"players"`
	ToMove   PlayerColor   `json:"toMove"`
	Board    BoardSnapshot `json:"board"`
	LastMove *MoveResult   `json:"lastMove"`
}

func NewGame(id string) *Game {
	return newGameWithBoard(id, NewBoard())
}

func newGameWithBoard(id string, board *Board) *Game {
	g := &Game{
		ID:          id,
		board:       board,
		connections: NewGameConnections(),
		state: GameState{
			ToMove:     PlayerColorWhite,
			LegalMoves: make([]Position, 0),
		},
	}
	g.refreshState()
	return g
}

// RestoreGame rebuilds a game from its persisted record.
func RestoreGame(record GameRecord) (*Game, error) {
	board, err := RestoreBoard(record.Board)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", record.ID, err)
	}
	g := newGameWithBoard(record.ID, board)
	g.state.Players = record.Players
	g.state.ToMove = record.ToMove
	g.state.LastMove = record.LastMove
	g.refreshState()
	return g, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func (g *Game) Record() GameRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	return GameRecord{
		ID:       g.ID,
		Players:  g.state.Players,
		ToMove:   g.state.ToMove,
		Board:    g.board.Snapshot(),
		LastMove: g.state.LastMove,
	}
}

// AddPlayer seats white first, then black. A player already seated gets
// their color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, err := g.colorOf(playerID); err == nil {
		return color, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: PlayerColorWhite}
		return PlayerColorWhite, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: PlayerColorBlack}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.colorOf(playerID)
	return err == nil
}

func (g *Game) colorOf(playerID string) (PlayerColor, error) {
	switch {
	case playerID == "":
		return "", ErrPlayerNotInGame
	case g.state.Players.White.ID == playerID:
		return PlayerColorWhite, nil
	case g.state.Players.Black.ID == playerID:
		return PlayerColorBlack, nil
	}
	return "", ErrPlayerNotInGame
}

// moverColor returns the color of playerID if it is that player's turn.
func (g *Game) moverColor(playerID string) (PlayerColor, error) {
	color, err := g.colorOf(playerID)
	if err != nil {
		return "", err
	}
	if color != g.state.ToMove {
		return "", ErrNotYourTurn
	}
	return color, nil
}

// Select locates the piece on a 1-based square for playerID and records the
// squares it may move to.
func (g *Game) Select(playerID string, row, column int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.moverColor(playerID)
	if err != nil {
		return err
	}
	if g.board.PendingPromotion() != nil {
		return fmt.Errorf("%w: promotion pending", ErrInvalidMove)
	}
	piece, err := g.board.Locate(row, column)
	if err != nil {
		return err
	}
	if piece.Color != color {
		return fmt.Errorf("%w: %s belongs to %s", ErrInvalidMove, piece, piece.Color)
	}
	moves, err := g.board.LegalMoves(row, column)
	if err != nil {
		return err
	}

	selected := piece.Position()
	g.state.SelectedSquare = &selected
	g.state.LegalMoves = moves
	g.broadcastLocked()
	return nil
}

// MakeMove moves the selected piece to a 1-based square. The turn passes
// unless the move promoted a pawn, in which case it passes after Promote.
func (g *Game) MakeMove(playerID string, row, column int) (*MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.moverColor(playerID)
	if err != nil {
		return nil, err
	}
	if g.board.PendingPromotion() != nil {
		return nil, fmt.Errorf("%w: promotion pending", ErrInvalidMove)
	}
	result, err := g.board.MakeMove(color, row, column)
	if err != nil {
		return nil, err
	}
	log.Debugw("move made", "game", g.ID, "piece", result.Piece, "from", result.From, "to", result.To)

	g.state.LastMove = result
	if result.Promotion == nil {
		g.switchTurn()
	}
	g.refreshState()
	g.broadcastLocked()
	return result, nil
}

// Promote completes a pending promotion with the player's chosen piece.
func (g *Game) Promote(playerID string, pieceType PieceType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, err := g.moverColor(playerID)
	if err != nil {
		return err
	}
	if _, err := g.board.Promote(color, pieceType); err != nil {
		return err
	}
	g.switchTurn()
	g.refreshState()
	g.broadcastLocked()
	return nil
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}

// refreshState rebuilds the derived parts of the state from the board.
func (g *Game) refreshState() {
	g.state.Board = g.board.Snapshot()
	g.state.IsCheck = g.board.KingInCheck(g.state.ToMove)
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]Position, 0)
	g.state.PromotionSquare = nil
	g.state.PromotionChoices = nil
	if pawn := g.board.PendingPromotion(); pawn != nil {
		square := pawn.Position()
		g.state.PromotionSquare = &square
		g.state.PromotionChoices = g.board.CapturedPieces()[pawn.Color]
	}
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	_, err := g.colorOf(playerID)
	payload, marshalErr := json.Marshal(g.state)
	g.mu.Unlock()

	if err != nil {
		return err
	}
	if marshalErr != nil {
		return marshalErr
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the existing connection and reject the new one
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	log.Infof("game %s: registered connection for player %s", g.ID, playerID)

	// Send initial state
	g.connections.sendLocked(playerID, conn, ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
	return nil
}

// UnregisterConnection drops conn if it is still the player's current one.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Infof("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

// SendError writes an error message to one player's connection.
func (g *Game) SendError(playerID string, message string) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if conn, ok := g.connections.connections[playerID]; ok {
		g.connections.sendLocked(playerID, conn, ws.Message{Type: ws.MessageTypeError, Payload: payload})
	}
}

// broadcastLocked snapshots the state while g.mu is held and pushes it to
// every observer in the background.
func (g *Game) broadcastLocked() {
	payload, err := json.Marshal(g.state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	go g.connections.broadcast(ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}

func (gc *GameConnections) broadcast(msg ws.Message) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	for playerID, conn := range gc.connections {
		gc.sendLocked(playerID, conn, msg)
	}
}

// sendLocked writes msg to conn, dropping the connection on failure. gc.mu
// must be held.
func (gc *GameConnections) sendLocked(playerID string, conn *websocket.Conn, msg ws.Message) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Warnf("dropping connection for player %s: %v", playerID, err)
		delete(gc.connections, playerID)
	}
}

// ConnectionCount reports how many observers are attached.
func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}
