// Package complete provides the level-complete summary scene.
package complete

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/obby/internal/application/replay"
	"github.com/younwookim/obby/internal/application/scene"
	"github.com/younwookim/obby/internal/application/session"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
)

var (
	colorBG    = color.RGBA{26, 26, 46, 255}
	colorPanel = color.RGBA{0, 0, 0, 160}
)

// Complete shows the summary of a finished level
type Complete struct {
	ctx     *scene.Context
	summary session.Summary
}

// New creates the level-complete scene
func New(ctx *scene.Context) *Complete {
	return &Complete{ctx: ctx}
}

// Summary returns the figures being shown
func (c *Complete) Summary() session.Summary {
	return c.summary
}

// Update waits for next, restart or menu
func (c *Complete) Update() (scene.Scene, error) {
	in := c.ctx.Input
	sess := c.ctx.Session

	switch {
	case in.JustPressed(system.ActionNextLevel):
		sess.NextLevel()
		c.ctx.RecordCommand(replay.CmdNext)
	case in.JustPressed(system.ActionRestart):
		sess.RestartLevel()
		c.ctx.RecordCommand(replay.CmdRestart)
	case in.JustPressed(system.ActionCancel):
		c.ctx.StopRecording()
		sess.GoToMenu()
	}

	return c.ctx.Transition(state.StateLevelComplete), nil
}

// Draw renders the summary panel
func (c *Complete) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	d := c.ctx.Config.Display
	x, y := d.ScreenWidth/2-100, d.ScreenHeight/2-60
	ebitenutil.DrawRect(screen, float64(x-10), float64(y-10), 220, 130, colorPanel)

	lines := []string{
		c.summary.Title(),
		"",
		fmt.Sprintf("Player: %s", c.summary.PlayerName),
		fmt.Sprintf("Difficulty: %s", c.summary.Difficulty),
		fmt.Sprintf("Time: %s", session.FormatTime(c.summary.ElapsedSeconds)),
		fmt.Sprintf("Falls: %d", c.summary.FallCount),
		"",
		"N/ENTER: next   R: retry   ESC: menu",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*14)
	}
}

// OnEnter captures the summary of the level just finished
func (c *Complete) OnEnter() {
	c.summary = c.ctx.Session.Summary()
}

// OnExit is called when leaving the scene
func (c *Complete) OnExit() {}
