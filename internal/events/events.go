package events

//go:generate mockgen -source=events.go -destination=mock/mock_events.go -package=mock

import (
	"context"
	"ctchen222/connect-n/internal/game"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Event types
const (
	GameStarted  = "game_started"
	TurnStarted  = "turn_started"
	MovePlayed   = "move_played"
	MoveRejected = "move_rejected"
	GameOver     = "game_over"
)

// Event is a notification about one game session.
type Event struct {
	Type    string          `json:"event"`
	GameID  string          `json:"game_id"`
	Payload json.RawMessage `json:"payload"`
}

// Listener receives session events in the order they happen.
type Listener interface {
	Notify(ctx context.Context, event Event)
}

// GameStartedPayload is the payload for the "game_started" event.
type GameStartedPayload struct {
	Size           int             `json:"size"`
	RequiredRun    int             `json:"required_run"`
	StartingPlayer game.PlayerMark `json:"starting_player"`
	AIPlayer       game.PlayerMark `json:"ai_player"`
}

// TurnStartedPayload is the payload for the "turn_started" event.
type TurnStartedPayload struct {
	Player game.PlayerMark `json:"player"`
	IsBot  bool            `json:"is_bot"`
	Turn   int             `json:"turn"`
}

// MovePlayedPayload is the payload for the "move_played" event.
type MovePlayedPayload struct {
	Player   game.PlayerMark     `json:"player"`
	Position game.Position       `json:"position"`
	Turn     int                 `json:"turn"`
	Board    [][]game.PlayerMark `json:"board"`
}

// MoveRejectedPayload is the payload for the "move_rejected" event.
type MoveRejectedPayload struct {
	Player   game.PlayerMark `json:"player"`
	Position *game.Position  `json:"position,omitempty"`
	Reason   string          `json:"reason"`
}

// GameOverPayload is the payload for the "game_over" event.
type GameOverPayload struct {
	Winner game.PlayerMark `json:"winner"`
	Draw   bool            `json:"draw"`
	Turns  int             `json:"turns"`
}

// New builds an event, encoding payload as JSON.
func New(eventType, gameID string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, GameID: gameID, Payload: raw}, nil
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// LogListener writes every event to the default slog logger at debug level.
type LogListener struct{}

func (LogListener) Notify(ctx context.Context, event Event) {
	slog.DebugContext(ctx, "Session event",
		"game.id", event.GameID,
		"event", event.Type,
		"payload", string(event.Payload),
	)
}

// Fanout delivers every event to each listener in turn.
type Fanout []Listener

func (f Fanout) Notify(ctx context.Context, event Event) {
	for _, l := range f {
		l.Notify(ctx, event)
	}
}
