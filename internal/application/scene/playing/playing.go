// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/obby/internal/application/replay"
	"github.com/younwookim/obby/internal/application/scene"
	"github.com/younwookim/obby/internal/application/session"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG             = color.RGBA{135, 206, 235, 255}
	colorPlatform       = color.RGBA{139, 69, 19, 255}
	colorPlatformActive = color.RGBA{170, 100, 40, 255}
	colorCheckpoint     = color.RGBA{255, 255, 0, 255}
	colorCheckpointDone = color.RGBA{0, 255, 0, 255}
	colorFinish         = color.RGBA{255, 0, 0, 255}
	colorPlayer         = color.RGBA{0, 0, 255, 255}
	colorPlayerAir      = color.RGBA{100, 100, 255, 255}
	colorFacing         = color.RGBA{255, 255, 255, 255}
	colorEye            = color.RGBA{60, 60, 60, 255}
	colorHUD            = color.RGBA{0, 0, 0, 128}
)

// messageFrames is how long a checkpoint or fall notice stays on screen
const messageFrames = 90

// Playing is the main gameplay scene
type Playing struct {
	ctx *scene.Context

	message      string
	messageTimer int
}

// New creates a new Playing scene
func New(ctx *scene.Context) *Playing {
	return &Playing{ctx: ctx}
}

// Update runs one gameplay frame (implements scene.Scene)
func (p *Playing) Update() (scene.Scene, error) {
	in := p.ctx.Input
	sess := p.ctx.Session

	if in.JustPressed(system.ActionCancel) {
		p.ctx.StopRecording()
		sess.GoToMenu()
		return p.ctx.Transition(state.StatePlaying), nil
	}

	// A restart uses up the frame: replays apply it as a command
	// between ticks.
	if in.JustPressed(system.ActionRestart) {
		sess.RestartLevel()
		p.ctx.RecordCommand(replay.CmdRestart)
		p.message, p.messageTimer = "", 0
		return p.ctx.Transition(state.StatePlaying), nil
	}

	// F5: Save recording manually
	if in.JustPressed(system.ActionSaveRecording) {
		p.ctx.SaveRecording()
	}

	input := in.GetInput()
	p.ctx.RecordFrame(input)

	frame := sess.Tick(input)
	p.handleEvents(frame.Events)

	if p.messageTimer > 0 {
		p.messageTimer--
	}

	if sess.State() == state.StateLevelComplete {
		// Auto-save recording on level complete
		p.ctx.SaveRecording()
	}

	return p.ctx.Transition(state.StatePlaying), nil
}

func (p *Playing) handleEvents(events []session.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case session.CheckpointPassed:
			p.flash(fmt.Sprintf("Checkpoint %d/%d", e.Passed, e.Total))
		case session.FellOut:
			p.flash(fmt.Sprintf("Fell! (%d)", e.FallCount))
			log.Printf("session %s: fall %d", p.ctx.Session.ID(), e.FallCount)
		}
	}
}

func (p *Playing) flash(msg string) {
	p.message = msg
	p.messageTimer = messageFrames
}

// Message returns the notice currently on screen, "" when none
func (p *Playing) Message() string {
	if p.messageTimer == 0 {
		return ""
	}
	return p.message
}

// Draw renders the level top-down around the player, plus the HUD
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	sess := p.ctx.Session
	if sess.Level() == nil || sess.Player() == nil {
		return
	}

	p.drawPlatforms(screen)
	p.drawMarkers(screen)
	p.drawPlayer(screen)
	p.drawHUD(screen)
}

// toScreen projects a world X/Z onto the screen, centred on the player
func (p *Playing) toScreen(pos mgl64.Vec3) (float64, float64) {
	d := p.ctx.Config.Display
	center := p.ctx.Session.Player().Position
	x := float64(d.ScreenWidth)/2 + (pos.X()-center.X())*d.WorldScale
	y := float64(d.ScreenHeight)/2 + (pos.Z()-center.Z())*d.WorldScale
	return x, y
}

// ActivePlatform returns the platform the player is standing on
func (p *Playing) ActivePlatform() (entity.Platform, bool) {
	player := p.ctx.Session.Player()
	if !player.Grounded {
		return entity.Platform{}, false
	}
	return p.ctx.Session.Level().Platform(player.LastPlatform)
}

func (p *Playing) drawPlatforms(screen *ebiten.Image) {
	for _, pl := range p.ctx.Session.Level().Platforms {
		p.drawPlatform(screen, pl, colorPlatform)
	}
	if pl, ok := p.ActivePlatform(); ok {
		p.drawPlatform(screen, pl, colorPlatformActive)
	}
}

func (p *Playing) drawPlatform(screen *ebiten.Image, pl entity.Platform, c color.Color) {
	scale := p.ctx.Config.Display.WorldScale
	x, y := p.toScreen(pl.Position)
	ebitenutil.DrawRect(screen, x-pl.Width*scale/2, y-pl.Length*scale/2, pl.Width*scale, pl.Length*scale, c)
}

func (p *Playing) drawMarkers(screen *ebiten.Image) {
	level := p.ctx.Session.Level()

	for _, cp := range level.Checkpoints {
		x, y := p.toScreen(cp.Position)
		c := colorCheckpoint
		if cp.Passed {
			c = colorCheckpointDone
		}
		ebitenutil.DrawRect(screen, x-3, y-3, 6, 6, c)
	}

	x, y := p.toScreen(level.Finish.Position)
	ebitenutil.DrawRect(screen, x-5, y-5, 10, 10, colorFinish)
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	player := p.ctx.Session.Player()
	x, y := p.toScreen(player.Position)

	c := colorPlayer
	if !player.Grounded {
		c = colorPlayerAir
	}
	ebitenutil.DrawRect(screen, x-4, y-4, 8, 8, c)

	forward, _ := p.ctx.Session.Camera().Basis()
	ebitenutil.DrawLine(screen, x, y, x+forward.X()*12, y+forward.Z()*12, colorFacing)

	// follow camera, behind the player
	ex, ey := p.toScreen(p.ctx.Session.CameraEye())
	ebitenutil.DrawLine(screen, ex, ey, x, y, colorEye)
	ebitenutil.DrawRect(screen, ex-2, ey-2, 4, 4, colorEye)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	sess := p.ctx.Session
	w := p.ctx.Config.Display.ScreenWidth

	ebitenutil.DrawRect(screen, 0, 0, float64(w), 40, colorHUD)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  Level %d (%s)", sess.PlayerName(), sess.CurrentLevel(), sess.Difficulty()), 8, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time %s  Checkpoints %d/%d  Falls %d",
		session.FormatTime(sess.ElapsedSeconds()), sess.CheckpointsPassed(), sess.CheckpointCount(), sess.FallCount()), 8, 20)

	if msg := p.Message(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*3, p.ctx.Config.Display.ScreenHeight/2-40)
	}

	if rec := p.ctx.Recorder(); rec != nil && rec.IsRecording() {
		tag := fmt.Sprintf("REC %s (%d)", filepath.Base(p.ctx.RecordFile()), rec.FrameCount())
		ebitenutil.DebugPrintAt(screen, tag, w-len(tag)*6-4, 4)
	}
}

// OnEnter is called when the scene becomes active.
// The cursor kept moving while another scene was shown, so its first
// delta is dropped instead of turning the camera.
func (p *Playing) OnEnter() {
	p.ctx.Input.ResetLook()
	p.message, p.messageTimer = "", 0
}

// OnExit is called when leaving the scene
func (p *Playing) OnExit() {}
