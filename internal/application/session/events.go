package session

import (
	"fmt"

	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/domain/entity"
)

// Event is something the UI may want to react to after a tick
type Event interface {
	isEvent()
}

// CheckpointPassed fires once per checkpoint per level instance
type CheckpointPassed struct {
	Index  int // index into Level.Checkpoints
	Passed int // checkpoints passed so far in this level
	Total  int
}

func (CheckpointPassed) isEvent() {}

// LevelCompleted fires on the tick the finish is reached
type LevelCompleted struct {
	Summary Summary
}

func (LevelCompleted) isEvent() {}

// FellOut fires when the player dropped below the fall threshold and was respawned
type FellOut struct {
	FallCount int
}

func (FellOut) isEvent() {}

// FrameResult is what the renderer needs after a tick
type FrameResult struct {
	Frame            uint64
	State            state.GameState
	Skipped          bool // the session was not Playing, nothing ran
	Player           entity.Player
	Camera           entity.Camera
	GroundedPlatform int
	Events           []Event
}

// Summary is the level-complete report
type Summary struct {
	PlayerName     string
	Level          int
	Difficulty     entity.Difficulty
	ElapsedSeconds int
	FallCount      int
}

// Title returns the heading of the level-complete screen
func (s Summary) Title() string {
	return fmt.Sprintf("LEVEL %d COMPLETE!", s.Level)
}
