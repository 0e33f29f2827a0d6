package session

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession() (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := New(config.Default(),
		WithClock(clock.Now),
		WithLogger(log.New(io.Discard, "", 0)),
	)
	return s, clock
}

// reachFinish puts the player 1.9 short of the finish and ticks once
func reachFinish(t *testing.T, s *Session) FrameResult {
	t.Helper()
	finish := s.Level().Finish.Position
	s.Player().Position = finish.Sub(mgl64.Vec3{0, 0, 1.9})
	return s.Tick(system.InputState{})
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func TestNew(t *testing.T) {
	s, _ := newTestSession()

	assert.Equal(t, state.StateMenu, s.State())
	assert.False(t, s.IsPlaying())
	assert.Nil(t, s.Level())
	assert.Nil(t, s.Player())
	assert.Zero(t, s.ElapsedSeconds())
	assert.Zero(t, s.CheckpointCount())
	assert.Equal(t, uuid.Nil, s.ID())
}

func TestSession_StartGame(t *testing.T) {
	s, _ := newTestSession()

	s.StartGame("Robin", entity.DifficultyHard)

	assert.Equal(t, state.StatePlaying, s.State())
	assert.True(t, s.IsPlaying())
	assert.Equal(t, "Robin", s.PlayerName())
	assert.Equal(t, entity.DifficultyHard, s.Difficulty())
	assert.Equal(t, 1, s.CurrentLevel())
	assert.Zero(t, s.CheckpointsPassed())
	assert.Zero(t, s.FallCount())
	assert.NotEqual(t, uuid.Nil, s.ID())

	require.NotNil(t, s.Level())
	assert.Len(t, s.Level().Platforms, 12)
	assert.Equal(t, 1.5, s.Level().Platforms[0].Width)
	assert.Equal(t, 3, s.CheckpointCount())

	require.NotNil(t, s.Player())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, s.Player().Position)
	assert.True(t, s.Player().Grounded)
}

func TestSession_StartGame_BlankName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		s, _ := newTestSession()
		s.StartGame(name, entity.DifficultyNormal)
		assert.Equal(t, DefaultPlayerName, s.PlayerName())
	}
}

func TestSession_TickSkippedOutsidePlaying(t *testing.T) {
	s, _ := newTestSession()

	res := s.Tick(system.InputState{Forward: true})

	assert.True(t, res.Skipped)
	assert.Equal(t, state.StateMenu, res.State)
	assert.Empty(t, res.Events)
}

func TestSession_TickSettlesOnFirstPlatform(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)

	res := s.Tick(system.InputState{})

	assert.False(t, res.Skipped)
	assert.Equal(t, uint64(1), res.Frame)
	assert.Equal(t, 0, res.GroundedPlatform)
	assert.Equal(t, 0.5, res.Player.Position.Y())
	assert.True(t, s.Player().Grounded)
	assert.Equal(t, 0, s.Player().LastPlatform)
}

func TestSession_TickMovesPlayer(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)

	for i := 0; i < 10; i++ {
		s.Tick(system.InputState{Back: true})
	}

	// back with zero yaw walks toward +z, along the course
	assert.InDelta(t, 2.0, s.Player().Position.Z(), 1e-9)
	assert.True(t, s.Player().Grounded)
}

func TestSession_Checkpoint(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)

	cp := s.Level().Checkpoints[0].Position
	s.Player().Position = cp

	res := s.Tick(system.InputState{})

	assert.Equal(t, 1, s.CheckpointsPassed())
	require.Equal(t, 1, countEvents[CheckpointPassed](res.Events))
	assert.Equal(t, CheckpointPassed{Index: 0, Passed: 1, Total: 3}, res.Events[0])

	// Staying on the checkpoint does not count it again
	res = s.Tick(system.InputState{})
	assert.Equal(t, 1, s.CheckpointsPassed())
	assert.Zero(t, countEvents[CheckpointPassed](res.Events))
}

func TestSession_CheckpointsNeverExceedCount(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyEasy)

	for round := 0; round < 3; round++ {
		for i := range s.Level().Checkpoints {
			s.Player().Position = s.Level().Checkpoints[i].Position
			s.Tick(system.InputState{})
			require.LessOrEqual(t, s.CheckpointsPassed(), s.CheckpointCount())
		}
	}
	assert.Equal(t, s.CheckpointCount(), s.CheckpointsPassed())
}

func TestSession_FallOut(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	s.Player().Position = s.Level().Checkpoints[0].Position
	s.Tick(system.InputState{})
	require.Equal(t, 1, s.CheckpointsPassed())

	s.Player().Position = mgl64.Vec3{20, -10.5, 0}
	res := s.Tick(system.InputState{})

	assert.Equal(t, 1, s.FallCount())
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, s.Player().Position)
	assert.Zero(t, s.Player().VelocityY)
	assert.Equal(t, 1, s.CheckpointsPassed())
	assert.Equal(t, state.StatePlaying, s.State())
	assert.Equal(t, []Event{FellOut{FallCount: 1}}, res.Events)
}

func TestSession_FallingFromSpawnEventuallyCounts(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	s.Player().Position = mgl64.Vec3{30, 1, 0}

	falls := 0
	for i := 0; i < 200 && falls == 0; i++ {
		res := s.Tick(system.InputState{})
		falls += countEvents[FellOut](res.Events)
	}

	assert.Equal(t, 1, falls)
	assert.Equal(t, 1, s.FallCount())
}

func TestSession_FinishCompletesOnce(t *testing.T) {
	s, clock := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	assert.InDelta(t, 36.0, s.Level().Finish.Position.Z(), 1e-9)

	clock.Advance(65 * time.Second)
	res := reachFinish(t, s)

	assert.Equal(t, state.StateLevelComplete, s.State())
	assert.Equal(t, state.StateLevelComplete, res.State)
	assert.False(t, s.IsPlaying())
	require.Equal(t, 1, countEvents[LevelCompleted](res.Events))

	// Further ticks do nothing, the player is still inside the radius
	for i := 0; i < 5; i++ {
		res = s.Tick(system.InputState{})
		assert.True(t, res.Skipped)
		assert.Zero(t, countEvents[LevelCompleted](res.Events))
	}
	assert.Equal(t, state.StateLevelComplete, s.State())

	// The timer is frozen
	clock.Advance(time.Hour)
	assert.Equal(t, 65, s.ElapsedSeconds())
}

func TestSession_Summary(t *testing.T) {
	s, clock := newTestSession()
	s.StartGame("Robin", entity.DifficultyEasy)
	s.Player().Position = mgl64.Vec3{20, -10.5, 0}
	s.Tick(system.InputState{})

	clock.Advance(61500 * time.Millisecond)
	res := reachFinish(t, s)

	want := Summary{
		PlayerName:     "Robin",
		Level:          1,
		Difficulty:     entity.DifficultyEasy,
		ElapsedSeconds: 61,
		FallCount:      1,
	}
	assert.Equal(t, want, s.Summary())
	assert.Contains(t, res.Events, Event(LevelCompleted{Summary: want}))
	assert.Equal(t, "LEVEL 1 COMPLETE!", want.Title())
	assert.Equal(t, "1:01", FormatTime(want.ElapsedSeconds))
}

func TestSession_ElapsedSeconds(t *testing.T) {
	s, clock := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)

	assert.Zero(t, s.ElapsedSeconds())
	clock.Advance(9*time.Second + 900*time.Millisecond)
	assert.Equal(t, 9, s.ElapsedSeconds())
	clock.Advance(600 * time.Second)
	assert.Equal(t, 609, s.ElapsedSeconds())
}

func TestSession_RestartLevel(t *testing.T) {
	s, clock := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	s.Player().Position = s.Level().Checkpoints[0].Position
	s.Tick(system.InputState{})
	s.Player().Position = mgl64.Vec3{20, -10.5, 0}
	s.Tick(system.InputState{})
	oldLevel := s.Level()
	id := s.ID()
	clock.Advance(30 * time.Second)

	s.RestartLevel()

	assert.Equal(t, state.StatePlaying, s.State())
	assert.Equal(t, 1, s.CurrentLevel())
	assert.Zero(t, s.CheckpointsPassed())
	assert.Equal(t, 1, s.FallCount(), "restart keeps falls")
	assert.Zero(t, s.ElapsedSeconds())
	assert.Equal(t, id, s.ID())
	assert.NotSame(t, oldLevel, s.Level(), "level is replaced, not reset in place")
	assert.True(t, oldLevel.Checkpoints[0].Passed)
	assert.False(t, s.Level().Checkpoints[0].Passed)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, s.Player().Position)
}

func TestSession_RestartFromLevelComplete(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	reachFinish(t, s)
	require.Equal(t, state.StateLevelComplete, s.State())

	s.RestartLevel()

	assert.Equal(t, state.StatePlaying, s.State())
	assert.Equal(t, 1, s.CurrentLevel())
}

func TestSession_NextLevel(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	s.Player().Position = s.Level().Checkpoints[0].Position
	s.Tick(system.InputState{})
	s.Player().Position = mgl64.Vec3{20, -10.5, 0}
	s.Tick(system.InputState{})
	reachFinish(t, s)

	s.NextLevel()

	assert.Equal(t, state.StatePlaying, s.State())
	assert.Equal(t, 2, s.CurrentLevel())
	assert.Zero(t, s.CheckpointsPassed())
	assert.Equal(t, 1, s.FallCount(), "falls accumulate across levels")
	assert.Len(t, s.Level().Platforms, 14)
	assert.Equal(t, 2, s.Level().Index)
}

func TestSession_GoToMenu(t *testing.T) {
	for _, complete := range []bool{false, true} {
		s, _ := newTestSession()
		s.StartGame("Robin", entity.DifficultyNormal)
		if complete {
			reachFinish(t, s)
		}

		s.GoToMenu()

		assert.Equal(t, state.StateMenu, s.State())
		assert.Nil(t, s.Level())
		assert.Nil(t, s.Player())
		assert.True(t, s.Tick(system.InputState{}).Skipped)
		assert.Equal(t, mgl64.Vec3{}, s.CameraEye())
	}
}

func TestSession_FreshStartResetsRun(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	s.Player().Position = mgl64.Vec3{20, -10.5, 0}
	s.Tick(system.InputState{LookDX: 50})
	reachFinish(t, s)
	s.NextLevel()
	firstID := s.ID()
	s.GoToMenu()

	s.StartGame("Sam", entity.DifficultyEasy)

	assert.Equal(t, 1, s.CurrentLevel())
	assert.Zero(t, s.FallCount())
	assert.Zero(t, s.CheckpointsPassed())
	assert.Equal(t, entity.Camera{}, s.Camera())
	assert.NotEqual(t, firstID, s.ID())
}

func TestSession_FallCountNeverDecreases(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)

	fall := func() {
		s.Player().Position = mgl64.Vec3{20, -10.5, 0}
		s.Tick(system.InputState{})
	}

	last := 0
	steps := []func(){
		fall,
		s.RestartLevel,
		fall,
		func() { reachFinish(t, s) },
		s.NextLevel,
		func() { s.Tick(system.InputState{Forward: true}) },
	}
	for i, step := range steps {
		step()
		require.GreaterOrEqual(t, s.FallCount(), last, "step %d", i)
		last = s.FallCount()
	}
	assert.Equal(t, 2, s.FallCount())
}

func TestSession_InvalidTransitionsPanic(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
		call  func(s *Session)
		op    string
		from  state.GameState
	}{
		{"next from menu", func(*Session) {}, (*Session).NextLevel, "NextLevel", state.StateMenu},
		{"restart from menu", func(*Session) {}, (*Session).RestartLevel, "RestartLevel", state.StateMenu},
		{"menu from menu", func(*Session) {}, (*Session).GoToMenu, "GoToMenu", state.StateMenu},
		{
			"next while playing",
			func(s *Session) { s.StartGame("", entity.DifficultyNormal) },
			(*Session).NextLevel, "NextLevel", state.StatePlaying,
		},
		{
			"start while playing",
			func(s *Session) { s.StartGame("", entity.DifficultyNormal) },
			func(s *Session) { s.StartGame("again", entity.DifficultyHard) },
			"StartGame", state.StatePlaying,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession()
			tt.setup(s)

			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				err, ok := r.(*TransitionError)
				require.True(t, ok, "panic value %T", r)
				assert.Equal(t, tt.op, err.Op)
				assert.Equal(t, tt.from, err.From)
				assert.Contains(t, err.Error(), tt.from.String())
			}()
			tt.call(s)
		})
	}
}

func TestSession_CameraEye(t *testing.T) {
	s, _ := newTestSession()
	s.StartGame("Robin", entity.DifficultyNormal)
	s.Tick(system.InputState{})

	eye := s.CameraEye()

	assert.InDelta(t, 0, eye.X(), 1e-9)
	assert.InDelta(t, 2.0, eye.Y(), 1e-9)
	assert.InDelta(t, 3.0, eye.Z(), 1e-9)
}
