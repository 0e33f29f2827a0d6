// Package scene defines the Scene interface for game screens.
//
// Each session state (menu, playing, level complete) is presented by one
// Scene. Scenes drive the shared session and hand over to each other
// through a Registry keyed by state, so no scene package imports another.
package scene

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/obby/internal/application/replay"
	"github.com/younwookim/obby/internal/application/session"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// Scene represents a game screen
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update runs one frame.
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update() (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}

// Registry maps each session state to the scene that presents it
type Registry map[state.GameState]Scene

// Next returns the scene for current when it differs from the state the
// caller presents, nil otherwise.
func (r Registry) Next(shown, current state.GameState) Scene {
	if shown == current {
		return nil
	}
	return r[current]
}

// Context is shared by every scene of one game window
type Context struct {
	Session *session.Session
	Input   system.InputSource
	Config  *config.Tuning
	Scenes  Registry

	// Menu defaults
	DefaultName       string
	DefaultDifficulty entity.Difficulty

	// RecordPath enables input recording when set. The first run of the
	// window is written there, later runs get a _2, _3... suffix.
	RecordPath string
	recorder   *replay.Recorder
	recordFile string
	runs       int
}

// Transition returns the scene for the session's current state if the
// caller, presenting shown, should hand over.
func (c *Context) Transition(shown state.GameState) Scene {
	return c.Scenes.Next(shown, c.Session.State())
}

// StartRecording begins a fresh recording for the run just started
func (c *Context) StartRecording() {
	if c.RecordPath == "" {
		return
	}
	c.runs++
	c.recordFile = runRecordPath(c.RecordPath, c.runs)
	c.recorder = replay.NewRecorder(
		c.Session.ID().String(),
		c.Session.PlayerName(),
		c.Session.Difficulty(),
		c.Config.Display.Framerate,
	)
	log.Printf("Recording enabled: %s (session: %s)", c.recordFile, c.Session.ID())
}

// runRecordPath returns base for the first run and base_<run> before the extension after that
func runRecordPath(base string, run int) string {
	if run <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(base, ext), run, ext)
}

// RecordFile returns the file the current or last recording is written to
func (c *Context) RecordFile() string {
	return c.recordFile
}

// Recorder returns the active recorder, nil when not recording
func (c *Context) Recorder() *replay.Recorder {
	return c.recorder
}

// RecordFrame records one tick's input when recording
func (c *Context) RecordFrame(input system.InputState) {
	if c.recorder != nil {
		c.recorder.RecordFrame(input)
	}
}

// RecordCommand records a transition when recording
func (c *Context) RecordCommand(cmd replay.Command) {
	if c.recorder != nil {
		c.recorder.RecordCommand(cmd)
	}
}

// SaveRecording writes the recording so far to RecordFile
func (c *Context) SaveRecording() {
	if c.recorder == nil {
		return
	}

	if err := c.recorder.Save(c.recordFile); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", c.recordFile, c.recorder.FrameCount())
	}
}

// StopRecording saves and drops the active recording
func (c *Context) StopRecording() {
	if c.recorder == nil {
		return
	}
	c.SaveRecording()
	c.recorder.Stop()
	c.recorder = nil
}
