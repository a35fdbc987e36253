package config

import (
	"ctchen222/connect-n/internal/game"
	"ctchen222/connect-n/internal/validator"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RandomStart lets the game pick the starting player.
const RandomStart = "random"

type Config struct {
	BoardSize      int             `validate:"min=3,max=26"`
	StartingPlayer string          `validate:"oneof=X O random"`
	AIPlayer       game.PlayerMark `validate:"mark"`
	Seed           uint64
	ThinkDelay     time.Duration `validate:"min=0"`
	LogLevel       string        `validate:"loglevel"`

	OTLPEndpoint string
	StdoutTraces bool
	NoColor      bool
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvUint(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads the configuration from the environment. Unparseable values keep
// their defaults; out-of-range values are reported by Validate.
func Load() Config {
	return Config{
		BoardSize:      getenvInt("BOARD_SIZE", 3),
		StartingPlayer: strings.ToUpper(getenv("STARTING_PLAYER", "X")),
		AIPlayer:       game.PlayerMark(strings.ToUpper(getenv("AI_PLAYER", "O"))),
		Seed:           getenvUint("AI_SEED", 0),
		ThinkDelay:     getenvDuration("AI_THINK_DELAY", 0),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "warn")),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		StdoutTraces:   getenvBool("OTEL_STDOUT_TRACES", false),
		NoColor:        os.Getenv("NO_COLOR") != "",
	}
}

// RegisterFlags binds command-line flags to c, using its current values as
// defaults so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.BoardSize, "size", c.BoardSize, "board edge length (3-26)")
	fs.StringVar(&c.StartingPlayer, "start", c.StartingPlayer, "player who moves first: X, O or random")
	fs.Func("ai", fmt.Sprintf("mark played by the computer: X or O (default %s)", c.AIPlayer), func(s string) error {
		c.AIPlayer = game.PlayerMark(strings.ToUpper(s))
		return nil
	})
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for the computer's opening replies (0 picks one)")
	fs.DurationVar(&c.ThinkDelay, "think", c.ThinkDelay, "pause before the computer answers")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "disable coloured output")
}

// Validate checks c against its field rules.
func (c Config) Validate() error {
	c.StartingPlayer = strings.ToUpper(c.StartingPlayer)
	c.LogLevel = strings.ToLower(c.LogLevel)
	if strings.EqualFold(c.StartingPlayer, RandomStart) {
		c.StartingPlayer = RandomStart
	}
	if err := validator.GetValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// StartingMark resolves StartingPlayer, drawing X or O for "random".
func (c Config) StartingMark() game.PlayerMark {
	if strings.EqualFold(c.StartingPlayer, RandomStart) {
		return game.RandomlyChooseFirstPlayer()
	}
	return game.PlayerMark(strings.ToUpper(c.StartingPlayer))
}
