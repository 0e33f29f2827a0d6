package menu

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/obby/internal/application/scene"
	"github.com/younwookim/obby/internal/application/scene/scenetest"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
)

type stubScene struct{}

func (stubScene) Update() (scene.Scene, error) { return nil, nil }
func (stubScene) Draw(*ebiten.Image)           {}
func (stubScene) OnEnter()                     {}
func (stubScene) OnExit()                      {}

func newTestMenu() (*Menu, *scene.Context, *scenetest.Input) {
	ctx, in, _ := scenetest.NewContext()
	m := New(ctx)
	ctx.Scenes[state.StateMenu] = m
	ctx.Scenes[state.StatePlaying] = stubScene{}
	return m, ctx, in
}

func step(t *testing.T, m *Menu, in *scenetest.Input) scene.Scene {
	t.Helper()
	next, err := m.Update()
	require.NoError(t, err)
	in.Reset()
	return next
}

func TestNew_Defaults(t *testing.T) {
	ctx, _, _ := scenetest.NewContext()
	ctx.DefaultName = "Sam"
	ctx.DefaultDifficulty = entity.DifficultyHard

	m := New(ctx)
	assert.Equal(t, "Sam", m.Name())
	assert.Equal(t, entity.DifficultyHard, m.Difficulty())
}

func TestMenu_Typing(t *testing.T) {
	m, _, in := newTestMenu()

	in.Type("Robin")
	assert.Nil(t, step(t, m, in))
	assert.Equal(t, "Robin", m.Name())

	in.Press(system.ActionErase)
	step(t, m, in)
	assert.Equal(t, "Robi", m.Name())

	in.Type("\t\x7f")
	step(t, m, in)
	assert.Equal(t, "Robi", m.Name(), "control characters are ignored")
}

func TestMenu_NameLimit(t *testing.T) {
	m, _, in := newTestMenu()

	in.Type(strings.Repeat("x", MaxNameLength+5))
	step(t, m, in)
	assert.Len(t, []rune(m.Name()), MaxNameLength)
}

func TestMenu_EraseEmpty(t *testing.T) {
	m, _, in := newTestMenu()

	in.Press(system.ActionErase)
	step(t, m, in)
	assert.Equal(t, "", m.Name())
}

func TestMenu_Difficulty(t *testing.T) {
	tests := []struct {
		action system.Action
		want   entity.Difficulty
	}{
		{system.ActionEasy, entity.DifficultyEasy},
		{system.ActionNormal, entity.DifficultyNormal},
		{system.ActionHard, entity.DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m, _, in := newTestMenu()
			in.Press(tt.action)
			step(t, m, in)
			assert.Equal(t, tt.want, m.Difficulty())
		})
	}
}

func TestMenu_Confirm(t *testing.T) {
	m, ctx, in := newTestMenu()

	in.Type("Robin")
	in.Press(system.ActionHard)
	step(t, m, in)

	in.Press(system.ActionConfirm)
	next := step(t, m, in)

	assert.Equal(t, stubScene{}, next)
	assert.Equal(t, state.StatePlaying, ctx.Session.State())
	assert.Equal(t, "Robin", ctx.Session.PlayerName())
	assert.Equal(t, entity.DifficultyHard, ctx.Session.Difficulty())
	assert.Equal(t, 1, ctx.Session.CurrentLevel())
}

func TestMenu_ConfirmBlankName(t *testing.T) {
	m, ctx, in := newTestMenu()

	in.Type("   ")
	in.Press(system.ActionConfirm)
	step(t, m, in)

	assert.Equal(t, "Player", ctx.Session.PlayerName())
}
