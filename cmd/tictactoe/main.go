package main

import (
	"context"
	"ctchen222/connect-n/internal/bot"
	"ctchen222/connect-n/internal/config"
	"ctchen222/connect-n/internal/console"
	"ctchen222/connect-n/internal/events"
	"ctchen222/connect-n/internal/game"
	"ctchen222/connect-n/internal/logger"
	"ctchen222/connect-n/internal/match"
	"ctchen222/connect-n/internal/player"
	"ctchen222/connect-n/internal/telemetry"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

var version = "v0.1.0"

func main() {
	cfg := config.Load()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(cfg); err != nil {
		log.Printf("Game aborted: %v", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Options{
		ServiceVersion: version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		StdoutTraces:   cfg.StdoutTraces,
		TraceWriter:    os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(logger.ParseLevel(cfg.LogLevel), os.Stderr)

	engineOpts := []bot.Option{bot.WithThinkDelay(cfg.ThinkDelay)}
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, bot.WithSeed(cfg.Seed))
	}
	engine := bot.New(engineOpts...)

	input := console.NewHuman(os.Stdin, os.Stdout)
	defer input.Close()

	human := player.NewPlayer("you", cfg.AIPlayer.Opponent(), input)
	computer := player.NewBotPlayer("computer", cfg.AIPlayer, engine)

	state := game.New(cfg.BoardSize, cfg.StartingMark(), cfg.AIPlayer)
	renderer := console.NewRenderer(os.Stdout, cfg.NoColor)

	listeners := events.Fanout{renderer, events.LogListener{}}
	m, err := match.New(state, [2]*player.Player{human, computer}, listeners)
	if err != nil {
		return fmt.Errorf("failed to set up match: %w", err)
	}

	result, err := m.Play(ctx)
	switch {
	case err == nil:
		slog.Info("Session finished", "game.id", m.ID, "game.winner", result.Winner, "game.turns", result.Turns)
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		renderer.Println("\nBye!")
	default:
		return fmt.Errorf("game %s: %w", m.ID, err)
	}
	return nil
}
