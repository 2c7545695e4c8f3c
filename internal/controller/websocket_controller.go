package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Set by WebSocketUpgrade before the upgrade
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection for game %s: %v", gameID, err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.gameService.SendError(gameID, playerID, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("handle error: %v", err)
			wsc.gameService.SendError(gameID, playerID, err.Error())
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

// handleMessage applies one inbound message. Successful messages answer
// through the game's state broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var square ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &square); err != nil {
			return err
		}
		_, err := wsc.gameService.SelectPiece(gameID, playerID, square.Row, square.Column)
		return err

	case ws.MessageTypeMove:
		var square ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &square); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, square.Row, square.Column)
		return err

	case ws.MessageTypePromote:
		var promotion ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &promotion); err != nil {
			return err
		}
		return wsc.gameService.Promote(gameID, playerID, promotion.Piece)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
