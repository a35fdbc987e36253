package match

import (
	"context"
	"ctchen222/connect-n/internal/events"
	"ctchen222/connect-n/internal/game"
	"ctchen222/connect-n/internal/player"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("match")

var ErrPlayers = errors.New("match needs one player with a move source per mark")

// Result is the outcome of a finished match.
type Result struct {
	Winner game.PlayerMark
	Turns  int
	Draw   bool
}

// Match drives one game between two players.
type Match struct {
	ID       string
	state    *game.State
	players  map[game.PlayerMark]*player.Player
	listener events.Listener
}

// New pairs players with state. listener may be nil.
func New(state *game.State, players [2]*player.Player, listener events.Listener) (*Match, error) {
	m := &Match{
		ID:       uuid.New().String(),
		state:    state,
		players:  make(map[game.PlayerMark]*player.Player, 2),
		listener: listener,
	}
	for _, p := range players {
		if p == nil || p.Source == nil || !p.Mark.Valid() {
			return nil, ErrPlayers
		}
		m.players[p.Mark] = p
	}
	if len(m.players) != 2 {
		return nil, ErrPlayers
	}
	return m, nil
}

// State returns a copy of the current game state.
func (m *Match) State() *game.State {
	return m.state.Clone()
}

// Play asks the players for moves in turn until the game ends.
// Illegal or unreadable moves from a human are reported and asked again.
// A bot proposing an illegal move, a failing move source or a cancelled ctx
// stop the match with an error.
func (m *Match) Play(ctx context.Context) (Result, error) {
	ctx, span := tracer.Start(ctx, "match.Play", trace.WithAttributes(
		attribute.String("game.id", m.ID),
		attribute.Int("game.size", m.state.Size()),
		attribute.Int("game.required_run", m.state.RequiredRun()),
	))
	defer span.End()

	slog.InfoContext(ctx, "Game started", "game.id", m.ID, "game.size", m.state.Size())
	m.emit(ctx, events.GameStarted, events.GameStartedPayload{
		Size:           m.state.Size(),
		RequiredRun:    m.state.RequiredRun(),
		StartingPlayer: m.state.StartingPlayer(),
		AIPlayer:       m.state.AIPlayer(),
	})

	for !m.state.Ended() {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "Match cancelled")
			return Result{}, err
		}
		if err := m.playTurn(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Match aborted")
			return Result{}, err
		}
	}

	result := Result{
		Winner: m.state.Winner(),
		Turns:  m.state.TurnCount(),
		Draw:   m.state.Status() == game.Draw,
	}
	span.SetAttributes(
		attribute.String("game.winner", result.Winner.String()),
		attribute.Int("game.turns", result.Turns),
	)
	slog.InfoContext(ctx, "Game over", "game.id", m.ID, "game.winner", result.Winner, "game.turns", result.Turns)
	m.emit(ctx, events.GameOver, events.GameOverPayload{
		Winner: result.Winner,
		Draw:   result.Draw,
		Turns:  result.Turns,
	})
	return result, nil
}

// playTurn asks the current player for one move. A rejected move is not an
// error; the loop asks the same player again.
func (m *Match) playTurn(ctx context.Context) error {
	mark := m.state.WhoseTurn()
	current := m.players[mark]

	ctx, span := tracer.Start(ctx, "match.playTurn", trace.WithAttributes(
		attribute.String("game.id", m.ID),
		attribute.String("player.mark", mark.String()),
		attribute.Int("game.turn", m.state.TurnCount()),
	))
	defer span.End()

	m.emit(ctx, events.TurnStarted, events.TurnStartedPayload{
		Player: mark,
		IsBot:  current.IsBot,
		Turn:   m.state.TurnCount(),
	})

	pos, err := current.Source.NextMove(ctx, m.state.Clone())
	if err != nil {
		if errors.Is(err, player.ErrInvalidInput) && !current.IsBot {
			m.reject(ctx, mark, nil, err)
			return nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Move source failed")
		return fmt.Errorf("%s (%s): %w", current.Name, mark, err)
	}
	span.SetAttributes(attribute.Int("move.row", pos.Row), attribute.Int("move.col", pos.Col))

	if err := m.state.Move(pos); err != nil {
		if current.IsBot || !(errors.Is(err, game.ErrOutOfBounds) || errors.Is(err, game.ErrCellOccupied)) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Illegal move")
			return fmt.Errorf("%s (%s) played %d,%d: %w", current.Name, mark, pos.Row, pos.Col, err)
		}
		m.reject(ctx, mark, &pos, err)
		return nil
	}

	slog.DebugContext(ctx, "Move played", "game.id", m.ID, "player.mark", mark, "move.row", pos.Row, "move.col", pos.Col)
	m.emit(ctx, events.MovePlayed, events.MovePlayedPayload{
		Player:   mark,
		Position: pos,
		Turn:     m.state.TurnCount(),
		Board:    m.state.Board().Rows(),
	})
	return nil
}

func (m *Match) reject(ctx context.Context, mark game.PlayerMark, pos *game.Position, reason error) {
	slog.InfoContext(ctx, "Move rejected", "game.id", m.ID, "player.mark", mark, "reason", reason)
	m.emit(ctx, events.MoveRejected, events.MoveRejectedPayload{
		Player:   mark,
		Position: pos,
		Reason:   reason.Error(),
	})
}

func (m *Match) emit(ctx context.Context, eventType string, payload any) {
	if m.listener == nil {
		return
	}
	ev, err := events.New(eventType, m.ID, payload)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build event", "game.id", m.ID, "event", eventType, "error", err)
		return
	}
	m.listener.Notify(ctx, ev)
}
