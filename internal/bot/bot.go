package bot

import (
	"context"
	"ctchen222/connect-n/internal/game"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

var (
	ErrNoLegalMove = errors.New("no legal moves")
	ErrNotAITurn   = errors.New("not the computer's turn")
)

// Stats describes the work done by one search.
type Stats struct {
	Nodes   int
	Cutoffs int
	Leaves  int
}

// Engine picks moves for the computer player.
type Engine struct {
	mu         sync.Mutex
	rng        *rand.Rand
	thinkDelay time.Duration
	lastStats  Stats

	nodeCounter   metric.Int64Counter
	cutoffCounter metric.Int64Counter
	duration      metric.Float64Histogram
}

type Option func(*Engine)

// WithSeed makes the opening replies reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithThinkDelay makes NextMove pause before answering so a human can follow
// the game.
func WithThinkDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.thinkDelay = d
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(e)
	}

	var err error
	if e.nodeCounter, err = meter.Int64Counter("search.nodes",
		metric.WithDescription("Positions visited by the move search")); err != nil {
		slog.Warn("Failed to create search.nodes counter", "error", err)
	}
	if e.cutoffCounter, err = meter.Int64Counter("search.cutoffs",
		metric.WithDescription("Branches pruned by alpha-beta")); err != nil {
		slog.Warn("Failed to create search.cutoffs counter", "error", err)
	}
	if e.duration, err = meter.Float64Histogram("search.duration",
		metric.WithDescription("Time spent choosing a move"),
		metric.WithUnit("ms")); err != nil {
		slog.Warn("Failed to create search.duration histogram", "error", err)
	}
	return e
}

// BestMove returns the computer's move for state. The state is not modified.
func (e *Engine) BestMove(ctx context.Context, state *game.State) (game.Position, error) {
	ctx, span := tracer.Start(ctx, "bot.BestMove", trace.WithAttributes(
		attribute.Int("game.size", state.Size()),
		attribute.Int("game.turn", state.TurnCount()),
		attribute.String("bot.mark", state.AIPlayer().String()),
	))
	defer span.End()

	if state.Ended() {
		span.SetStatus(codes.Error, "Game already finished")
		return game.Position{}, game.ErrGameOver
	}
	if state.WhoseTurn() != state.AIPlayer() {
		span.SetStatus(codes.Error, "Asked to move out of turn")
		return game.Position{}, ErrNotAITurn
	}

	if pos, ok := e.opening(state); ok {
		span.SetAttributes(attribute.Bool("bot.opening", true))
		slog.DebugContext(ctx, "Bot played from opening table", "move.row", pos.Row, "move.col", pos.Col)
		return pos, nil
	}

	start := time.Now()
	s := newSearcher(state.AIPlayer())
	pos, err := s.search(ctx, state, state.AvailableMoves())
	elapsed := time.Since(start)
	e.record(ctx, s.stats, elapsed)

	span.SetAttributes(
		attribute.Int("search.nodes", s.stats.Nodes),
		attribute.Int("search.cutoffs", s.stats.Cutoffs),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search failed")
		return game.Position{}, err
	}

	slog.DebugContext(ctx, "Bot finished search",
		"move.row", pos.Row,
		"move.col", pos.Col,
		"search.nodes", s.stats.Nodes,
		"search.cutoffs", s.stats.Cutoffs,
		"search.leaves", s.stats.Leaves,
		"search.duration", elapsed,
	)
	return pos, nil
}

// NextMove lets the engine act as a player's move source.
func (e *Engine) NextMove(ctx context.Context, state *game.State) (game.Position, error) {
	if e.thinkDelay > 0 {
		timer := time.NewTimer(e.thinkDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return game.Position{}, ctx.Err()
		case <-timer.C:
		}
	}

	pos, err := e.BestMove(ctx, state)
	if err != nil {
		return game.Position{}, fmt.Errorf("bot move: %w", err)
	}
	return pos, nil
}

// LastStats returns the statistics of the most recent search.
func (e *Engine) LastStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastStats
}

func (e *Engine) record(ctx context.Context, stats Stats, elapsed time.Duration) {
	e.mu.Lock()
	e.lastStats = stats
	e.mu.Unlock()

	if e.nodeCounter != nil {
		e.nodeCounter.Add(ctx, int64(stats.Nodes))
	}
	if e.cutoffCounter != nil {
		e.cutoffCounter.Add(ctx, int64(stats.Cutoffs))
	}
	if e.duration != nil {
		e.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond))
	}
}
