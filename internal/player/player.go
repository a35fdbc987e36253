package player

//go:generate mockgen -source=player.go -destination=mock/mock_player.go -package=mock

import (
	"context"
	"ctchen222/connect-n/internal/game"
	"errors"
)

// ErrInvalidInput is returned by a MoveSource that could not make sense of
// what it was given. The caller may ask again.
var ErrInvalidInput = errors.New("invalid input")

// MoveSource abstracts where a player's moves come from: a terminal, a
// search engine, a script.
type MoveSource interface {
	NextMove(ctx context.Context, state *game.State) (game.Position, error)
}

// Player represents one side of a game.
type Player struct {
	Name   string
	Mark   game.PlayerMark
	IsBot  bool
	Source MoveSource
}

// NewPlayer creates a human-driven player.
func NewPlayer(name string, mark game.PlayerMark, source MoveSource) *Player {
	return &Player{Name: name, Mark: mark, Source: source}
}

// NewBotPlayer creates a player whose moves come from the computer.
func NewBotPlayer(name string, mark game.PlayerMark, source MoveSource) *Player {
	p := NewPlayer(name, mark, source)
	p.IsBot = true
	return p
}
