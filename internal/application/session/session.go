// Package session owns one player's run: the Menu/Playing/LevelComplete state
// machine, the counters the HUD reads, and the per-frame tick.
//
// A Session is single-threaded. Tick and the transition methods must be called
// from the same goroutine, and transitions only between ticks.
package session

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// DefaultPlayerName is used when StartGame gets a blank name
const DefaultPlayerName = "Player"

// TransitionError describes a transition called from a state that does not allow it.
// Sessions panic with it: the UI is the only caller and must know the state.
type TransitionError struct {
	Op   string
	From state.GameState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("session: %s not allowed in state %s", e.Op, e.From)
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now, e.g. with a frame clock for replays
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger transitions are written to
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is the game core: level, player and counters for one run
type Session struct {
	config    *config.Tuning
	generator *system.LevelGenerator
	input     *system.InputSystem
	physics   *system.PhysicsSystem
	progress  *system.ProgressSystem
	now       func() time.Time
	logger    *log.Logger

	id                uuid.UUID
	state             state.GameState
	playerName        string
	difficulty        entity.Difficulty
	currentLevel      int
	startTime         time.Time
	elapsed           time.Duration // frozen at level completion
	checkpointsPassed int
	fallCount         int
	frame             uint64

	level  *entity.Level
	player *entity.Player
	camera entity.Camera
}

// New creates a session in the Menu state
func New(cfg *config.Tuning, opts ...Option) *Session {
	physics := system.NewPhysicsSystem(cfg)
	s := &Session{
		config:     cfg,
		generator:  system.NewLevelGenerator(cfg),
		input:      system.NewInputSystem(cfg),
		physics:    physics,
		progress:   system.NewProgressSystem(cfg, physics),
		now:        time.Now,
		logger:     log.Default(),
		state:      state.StateMenu,
		playerName: DefaultPlayerName,
		difficulty: entity.DifficultyNormal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartGame begins a fresh run at level 1. Menu -> Playing.
func (s *Session) StartGame(name string, difficulty entity.Difficulty) {
	s.require("StartGame", state.StateMenu)

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}

	s.id = uuid.New()
	s.playerName = name
	s.difficulty = difficulty
	s.currentLevel = 1
	s.fallCount = 0
	s.camera = entity.Camera{}
	s.beginLevel()

	s.logger.Printf("session %s: %s started on %s", s.id, s.playerName, s.difficulty)
}

// RestartLevel regenerates the current level. Playing|LevelComplete -> Playing.
func (s *Session) RestartLevel() {
	s.require("RestartLevel", state.StatePlaying, state.StateLevelComplete)

	s.beginLevel()
	s.logger.Printf("session %s: level %d restarted (falls %d)", s.id, s.currentLevel, s.fallCount)
}

// NextLevel advances to the following level. LevelComplete -> Playing.
// The fall count carries over.
func (s *Session) NextLevel() {
	s.require("NextLevel", state.StateLevelComplete)

	s.currentLevel++
	s.beginLevel()
	s.logger.Printf("session %s: level %d started", s.id, s.currentLevel)
}

// GoToMenu drops the level and player. Playing|LevelComplete -> Menu.
func (s *Session) GoToMenu() {
	s.require("GoToMenu", state.StatePlaying, state.StateLevelComplete)

	s.state = state.StateMenu
	s.level = nil
	s.player = nil
	s.logger.Printf("session %s: back to menu at level %d", s.id, s.currentLevel)
}

// beginLevel generates currentLevel and spawns the player
func (s *Session) beginLevel() {
	spawn := s.config.Collision.Spawn

	s.level = s.generator.Generate(s.currentLevel, s.difficulty)
	s.player = entity.NewPlayer(mgl64.Vec3{spawn.X, spawn.Y, spawn.Z})
	s.checkpointsPassed = 0
	s.elapsed = 0
	s.startTime = s.now()
	s.state = state.StatePlaying
}

// completeLevel freezes the timer. Playing -> LevelComplete.
func (s *Session) completeLevel() {
	s.elapsed = s.now().Sub(s.startTime)
	s.state = state.StateLevelComplete

	sum := s.Summary()
	s.logger.Printf("session %s: level %d complete in %s with %d falls",
		s.id, sum.Level, FormatTime(sum.ElapsedSeconds), sum.FallCount)
}

func (s *Session) require(op string, allowed ...state.GameState) {
	for _, st := range allowed {
		if s.state == st {
			return
		}
	}
	panic(&TransitionError{Op: op, From: s.state})
}

// Tick advances one frame. Outside Playing it does nothing and reports Skipped.
func (s *Session) Tick(input system.InputState) FrameResult {
	if s.state != state.StatePlaying {
		return FrameResult{State: s.state, Skipped: true}
	}
	s.frame++

	s.input.UpdatePlayer(s.player, &s.camera, input)
	s.physics.ApplyGravity(s.player)
	res := s.progress.Resolve(s.player, s.level)

	result := FrameResult{
		Frame:            s.frame,
		GroundedPlatform: res.GroundedPlatform,
	}

	for _, idx := range res.Checkpoints {
		s.checkpointsPassed++
		result.Events = append(result.Events, CheckpointPassed{
			Index:  idx,
			Passed: s.checkpointsPassed,
			Total:  len(s.level.Checkpoints),
		})
	}

	if res.FinishReached {
		s.completeLevel()
		result.Events = append(result.Events, LevelCompleted{Summary: s.Summary()})
	}

	if res.FellOut {
		s.fallCount++
		result.Events = append(result.Events, FellOut{FallCount: s.fallCount})
	}

	result.State = s.state
	result.Player = *s.player
	result.Camera = s.camera
	return result
}

// ID identifies the current run; it changes on every StartGame
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current state
func (s *Session) State() state.GameState { return s.state }

// IsPlaying reports whether ticks are being processed
func (s *Session) IsPlaying() bool { return s.state == state.StatePlaying }

// PlayerName returns the name the run was started with
func (s *Session) PlayerName() string { return s.playerName }

// Difficulty returns the difficulty of the run
func (s *Session) Difficulty() entity.Difficulty { return s.difficulty }

// CurrentLevel returns the 1-based level number
func (s *Session) CurrentLevel() int { return s.currentLevel }

// CheckpointsPassed returns checkpoints passed in the current level
func (s *Session) CheckpointsPassed() int { return s.checkpointsPassed }

// CheckpointCount returns the number of checkpoints in the current level
func (s *Session) CheckpointCount() int {
	if s.level == nil {
		return 0
	}
	return len(s.level.Checkpoints)
}

// FallCount returns falls accumulated since StartGame
func (s *Session) FallCount() int { return s.fallCount }

// Level returns the active level, nil in the menu
func (s *Session) Level() *entity.Level { return s.level }

// Player returns the active player, nil in the menu.
// The renderer reads Position through this pointer.
func (s *Session) Player() *entity.Player { return s.player }

// Camera returns the current look angles
func (s *Session) Camera() entity.Camera { return s.camera }

// CameraEye returns the follow-camera position for the renderer
func (s *Session) CameraEye() mgl64.Vec3 {
	if s.player == nil {
		return mgl64.Vec3{}
	}
	return s.camera.Follow(s.player.Position, s.config.Physics.CameraDistance, s.config.Physics.CameraHeight)
}

// ElapsedSeconds returns whole seconds on the level clock. The clock runs while
// Playing, is frozen on LevelComplete and reads 0 in the menu.
func (s *Session) ElapsedSeconds() int {
	switch s.state {
	case state.StatePlaying:
		return int(s.now().Sub(s.startTime) / time.Second)
	case state.StateLevelComplete:
		return int(s.elapsed / time.Second)
	default:
		return 0
	}
}

// Summary returns the figures shown on the level-complete screen
func (s *Session) Summary() Summary {
	return Summary{
		PlayerName:     s.playerName,
		Level:          s.currentLevel,
		Difficulty:     s.difficulty,
		ElapsedSeconds: s.ElapsedSeconds(),
		FallCount:      s.fallCount,
	}
}
