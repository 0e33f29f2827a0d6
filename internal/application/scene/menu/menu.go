// Package menu provides the title scene: name entry and difficulty selection.
package menu

import (
	"fmt"
	"image/color"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/obby/internal/application/scene"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
)

// MaxNameLength caps the typed player name in runes
const MaxNameLength = 16

var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorSelected = color.RGBA{100, 200, 100, 255}
	colorOption   = color.RGBA{60, 60, 80, 255}
)

// Menu is the title scene
type Menu struct {
	ctx        *scene.Context
	name       []rune
	difficulty entity.Difficulty
}

// New creates the menu with the context's defaults
func New(ctx *scene.Context) *Menu {
	return &Menu{
		ctx:        ctx,
		name:       []rune(ctx.DefaultName),
		difficulty: ctx.DefaultDifficulty,
	}
}

// Name returns the name typed so far
func (m *Menu) Name() string {
	return string(m.name)
}

// Difficulty returns the selected difficulty
func (m *Menu) Difficulty() entity.Difficulty {
	return m.difficulty
}

// Update handles typing, difficulty keys and the start key
func (m *Menu) Update() (scene.Scene, error) {
	in := m.ctx.Input

	for _, r := range in.TypedChars() {
		if !unicode.IsPrint(r) || len(m.name) >= MaxNameLength {
			continue
		}
		m.name = append(m.name, r)
	}
	if in.JustPressed(system.ActionErase) && len(m.name) > 0 {
		m.name = m.name[:len(m.name)-1]
	}

	switch {
	case in.JustPressed(system.ActionEasy):
		m.difficulty = entity.DifficultyEasy
	case in.JustPressed(system.ActionNormal):
		m.difficulty = entity.DifficultyNormal
	case in.JustPressed(system.ActionHard):
		m.difficulty = entity.DifficultyHard
	}

	if in.JustPressed(system.ActionConfirm) {
		m.ctx.Session.StartGame(string(m.name), m.difficulty)
		m.ctx.StartRecording()
		return m.ctx.Transition(state.StateMenu), nil
	}

	return nil, nil
}

// Draw renders the title screen
func (m *Menu) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	w := m.ctx.Config.Display.ScreenWidth
	ebitenutil.DebugPrintAt(screen, "OBBY", w/2-12, 40)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Name: %s_", string(m.name)), 40, 90)

	for i, d := range []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyNormal, entity.DifficultyHard} {
		x := float64(40 + i*100)
		c := colorOption
		if d == m.difficulty {
			c = colorSelected
		}
		ebitenutil.DrawRect(screen, x, 130, 90, 20, c)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("F%d %s", i+1, d), int(x)+6, 133)
	}

	ebitenutil.DebugPrintAt(screen, "ENTER: start   WASD: move   SPACE: jump   MOUSE: look", 40, 180)
	ebitenutil.DebugPrintAt(screen, "R: restart level   ESC: menu", 40, 196)
}

// OnEnter is called when the menu becomes active
func (m *Menu) OnEnter() {}

// OnExit is called when the menu is left
func (m *Menu) OnExit() {}
