package replay

import (
	"fmt"

	"github.com/younwookim/obby/internal/application/session"
	"github.com/younwookim/obby/internal/application/state"
)

// Result is what a headless replay produced
type Result struct {
	Frames     int // recorded frames, ticks and commands
	Ticks      int
	Completed  []session.Summary
	FallCount  int
	Level      int
	FinalState state.GameState
}

// Play starts a fresh run on sess and feeds it every recorded frame.
// sess must be in the menu and should read its time from clock.
func Play(sess *session.Session, clock *FrameClock, data ReplayData) (Result, error) {
	if sess.State() != state.StateMenu {
		return Result{}, fmt.Errorf("replay %s: session must start in %s, is in %s",
			data.SessionID, state.StateMenu, sess.State())
	}

	sess.StartGame(data.PlayerName, data.Difficulty)

	r := NewReplayer(data)
	res := Result{Frames: r.TotalFrames()}
	for {
		fi, ok := r.Next()
		if !ok {
			break
		}

		if fi.Cmd != "" {
			if err := apply(sess, fi.Cmd); err != nil {
				return res, fmt.Errorf("replay %s frame %d/%d: %w", data.SessionID, r.CurrentFrame(), r.TotalFrames(), err)
			}
			continue
		}

		clock.Advance()
		frame := sess.Tick(fi.Input())
		if frame.Skipped {
			continue
		}
		res.Ticks++
		for _, ev := range frame.Events {
			if done, ok := ev.(session.LevelCompleted); ok {
				res.Completed = append(res.Completed, done.Summary)
			}
		}
	}

	res.FallCount = sess.FallCount()
	res.Level = sess.CurrentLevel()
	res.FinalState = sess.State()
	return res, nil
}

// apply runs a recorded transition, refusing ones the session state does not allow
func apply(sess *session.Session, cmd Command) error {
	switch cmd {
	case CmdRestart:
		if sess.State() == state.StateMenu {
			return fmt.Errorf("%s not allowed in %s", cmd, sess.State())
		}
		sess.RestartLevel()
	case CmdNext:
		if sess.State() != state.StateLevelComplete {
			return fmt.Errorf("%s not allowed in %s", cmd, sess.State())
		}
		sess.NextLevel()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
