// Package scenetest provides a scripted input source and context for scene tests.
package scenetest

import (
	"io"
	"log"
	"time"

	"github.com/younwookim/obby/internal/application/scene"
	"github.com/younwookim/obby/internal/application/session"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// Input is an InputSource whose next frame is set by the test.
// Pressed actions and typed characters are consumed by Reset.
type Input struct {
	State   system.InputState
	Pressed map[system.Action]bool
	Chars   []rune

	// LookResets counts ResetLook calls
	LookResets int
}

// NewInput creates an empty scripted input
func NewInput() *Input {
	return &Input{Pressed: map[system.Action]bool{}}
}

// Press marks actions as just pressed for the next frame
func (in *Input) Press(actions ...system.Action) {
	for _, a := range actions {
		in.Pressed[a] = true
	}
}

// Type queues characters for the next frame
func (in *Input) Type(s string) {
	in.Chars = append(in.Chars, []rune(s)...)
}

// Reset clears everything edge-triggered
func (in *Input) Reset() {
	in.Pressed = map[system.Action]bool{}
	in.Chars = nil
	in.State.JumpPressed = false
}

func (in *Input) GetInput() system.InputState { return in.State }

func (in *Input) JustPressed(a system.Action) bool { return in.Pressed[a] }

func (in *Input) TypedChars() []rune { return in.Chars }

func (in *Input) ResetLook() { in.LookResets++ }

// Clock is a manually advanced session clock
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// NewContext builds a context around a fresh session with default tuning
// and a silent logger. Scenes is left for the caller to fill.
func NewContext() (*scene.Context, *Input, *Clock) {
	in := NewInput()
	clock := &Clock{T: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	cfg := config.Default()

	ctx := &scene.Context{
		Session: session.New(cfg,
			session.WithClock(clock.Now),
			session.WithLogger(log.New(io.Discard, "", 0)),
		),
		Input:             in,
		Config:            cfg,
		Scenes:            scene.Registry{},
		DefaultName:       "",
		DefaultDifficulty: entity.DifficultyNormal,
	}
	return ctx, in, clock
}
