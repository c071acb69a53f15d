package cubetwist

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// DefaultInputBacklog is how many queued moves a Game tolerates behind an
// animating move before it starts dropping input.
const DefaultInputBacklog = 2

// RandSource picks scramble moves. *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Option configures a Game.
type Option func(*config)

type config struct {
	logger           *slog.Logger
	moveDuration     time.Duration
	scrambleDuration time.Duration
	scrambleLength   int
	inputBacklog     int
	clock            func() time.Time
	rand             RandSource
	layouts          map[int]KeyLayout
}

func defaultConfig() *config {
	return &config{
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		moveDuration:     DefaultDuration,
		scrambleDuration: ScrambleDuration,
		inputBacklog:     DefaultInputBacklog,
		clock:            time.Now,
		rand:             globalRand{},
		layouts:          make(map[int]KeyLayout),
	}
}

// WithLogger sets the logger for game events.
// Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMoveDuration sets the animation time of player moves.
func WithMoveDuration(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.moveDuration = d
		}
	}
}

// WithScrambleDuration sets the animation time of each scramble move.
func WithScrambleDuration(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.scrambleDuration = d
		}
	}
}

// WithScrambleLength overrides the number of scramble moves.
// Zero keeps the default of 20 + 5N.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.scrambleLength = n
		}
	}
}

// WithInputBacklog sets how many moves may wait behind an animating move
// before key and drag input is dropped.
func WithInputBacklog(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.inputBacklog = n
		}
	}
}

// WithClock sets the wall clock used by the solve timer.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithRand sets the random source used for scrambling.
func WithRand(r RandSource) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithKeyLayout replaces the key layout for one puzzle size.
// Layouts are validated by NewGame.
func WithKeyLayout(size int, layout KeyLayout) Option {
	return func(c *config) {
		c.layouts[size] = layout
	}
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}
