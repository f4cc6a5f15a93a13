package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errMoveRequired   = errors.New("move is required")
)

// processMessage - routes one request to its handler and builds the response message.
func (that *Server) processMessage(ctx context.Context, data []byte) Message {
	log := that.logger.With("method", "processMessage")

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		return newMessage(actionError, &Payload{Error: "invalid message"})
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action", "action", message.Action)
		return newMessage(message.Action, &Payload{Error: "unknown action"})
	}

	var payloadReq Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payloadReq); err != nil {
			return newMessage(message.Action, &Payload{Error: "invalid payload"})
		}
	}

	payloadResp, err := handler(ctx, &payloadReq)
	if err != nil {
		log.Debug("action failed", "action", message.Action, "error", err)

		if payloadResp == nil {
			payloadResp = &Payload{}
		}

		payloadResp.Error = that.errorText(err)
	}

	return newMessage(message.Action, payloadResp)
}

func (that *Server) errorText(err error) string {
	switch {
	case errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, errGameIDRequired),
		errors.Is(err, errMoveRequired):
		return err.Error()
	default:
		that.logger.Error("request failed", "error", err)
		return "internal error"
	}
}

func (that *Server) handleNewGame(ctx context.Context, _ *Payload) (*Payload, error) {
	game, err := that.uGame.CreateGame(ctx)
	if err != nil {
		return nil, err
	}

	return &Payload{GameID: game.ID, Game: game}, nil
}

func (that *Server) handleGameState(ctx context.Context, payload *Payload) (*Payload, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.uGame.GetGame(ctx, payload.GameID)
	if err != nil {
		return &Payload{GameID: payload.GameID}, err
	}

	return &Payload{GameID: game.ID, Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, payload *Payload) (*Payload, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	if payload.Move == nil {
		return nil, errMoveRequired
	}

	game, err := that.uGame.MakeTurn(ctx, payload.GameID, *payload.Move)

	// a rejected move still carries the current game so the client can redraw
	return &Payload{GameID: payload.GameID, Game: game}, err
}

func (that *Server) handleGameReset(ctx context.Context, payload *Payload) (*Payload, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.uGame.ResetGame(ctx, payload.GameID)
	if err != nil {
		return &Payload{GameID: payload.GameID}, err
	}

	return &Payload{GameID: game.ID, Game: game}, nil
}

func (that *Server) handleGameLeave(ctx context.Context, payload *Payload) (*Payload, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	if err := that.uGame.DeleteGame(ctx, payload.GameID); err != nil {
		return &Payload{GameID: payload.GameID}, err
	}

	return &Payload{GameID: payload.GameID}, nil
}
