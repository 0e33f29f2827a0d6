package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// InputState is the gameplay input sampled once at the top of a tick
type InputState struct {
	Forward     bool
	Back        bool
	Left        bool
	Right       bool
	JumpPressed bool // edge-triggered: true only on the frame the key went down
	LookDX      float64
	LookDY      float64
}

// Action is a menu-level command bound to a key
type Action int

const (
	ActionConfirm Action = iota
	ActionCancel
	ActionRestart
	ActionNextLevel
	ActionErase
	ActionEasy
	ActionNormal
	ActionHard
	ActionSaveRecording
)

// InputSource supplies input to scenes. EbitenInput reads the keyboard and mouse;
// tests use scripted implementations.
type InputSource interface {
	GetInput() InputState
	JustPressed(a Action) bool
	TypedChars() []rune
	// ResetLook drops the cursor position remembered from the last GetInput,
	// so the next look delta starts from zero.
	ResetLook()
}

// DefaultBindings maps actions to keys
var DefaultBindings = map[Action][]ebiten.Key{
	ActionConfirm:       {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	ActionCancel:        {ebiten.KeyEscape},
	ActionRestart:       {ebiten.KeyR},
	ActionNextLevel:     {ebiten.KeyN, ebiten.KeyEnter},
	ActionErase:         {ebiten.KeyBackspace},
	ActionEasy:          {ebiten.KeyF1},
	ActionNormal:        {ebiten.KeyF2},
	ActionHard:          {ebiten.KeyF3},
	ActionSaveRecording: {ebiten.KeyF5},
}

// EbitenInput samples ebiten's keyboard and cursor state
type EbitenInput struct {
	bindings map[Action][]ebiten.Key
	chars    []rune
	cursor   cursorDelta
}

// cursorDelta turns absolute cursor positions into per-frame deltas.
// The first position after a reset yields no delta.
type cursorDelta struct {
	lastX, lastY int
	primed       bool
}

func (c *cursorDelta) next(x, y int) (dx, dy float64) {
	if c.primed {
		dx = float64(x - c.lastX)
		dy = float64(y - c.lastY)
	}
	c.lastX, c.lastY, c.primed = x, y, true
	return dx, dy
}

func (c *cursorDelta) reset() {
	c.primed = false
}

// NewEbitenInput creates an input source with DefaultBindings
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{bindings: DefaultBindings}
}

// GetInput reads the current gameplay input state
func (e *EbitenInput) GetInput() InputState {
	dx, dy := e.cursor.next(ebiten.CursorPosition())

	return InputState{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:        ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:        ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:       ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		LookDX:      dx,
		LookDY:      dy,
	}
}

// JustPressed reports whether any key bound to a went down this frame
func (e *EbitenInput) JustPressed(a Action) bool {
	for _, k := range e.bindings[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// ResetLook forgets the last cursor position (implements InputSource)
func (e *EbitenInput) ResetLook() {
	e.cursor.reset()
}

// TypedChars returns the characters typed since the last frame
func (e *EbitenInput) TypedChars() []rune {
	e.chars = ebiten.AppendInputChars(e.chars[:0])
	return e.chars
}

// InputSystem is the player controller: look, jump and horizontal movement.
// Steps are per frame and never scaled by wall-clock time.
type InputSystem struct {
	config *config.Tuning
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.Tuning) *InputSystem {
	return &InputSystem{config: cfg}
}

// UpdatePlayer applies one frame of input: look and jump first, then movement
// along the updated yaw.
func (s *InputSystem) UpdatePlayer(player *entity.Player, camera *entity.Camera, input InputState) {
	camera.Look(input.LookDX, input.LookDY, s.config.Physics.LookSensitivity)

	s.handleJump(player, input)
	s.handleMovement(player, *camera, input)
}

// handleJump starts a jump from the ground
func (s *InputSystem) handleJump(player *entity.Player, input InputState) {
	if !input.JumpPressed || !player.Grounded {
		return
	}
	player.VelocityY = s.config.Physics.JumpPower
	player.Grounded = false
}

// handleMovement moves along the yaw basis. Directions add up unnormalized,
// so diagonals are faster than a single axis.
func (s *InputSystem) handleMovement(player *entity.Player, camera entity.Camera, input InputState) {
	forward, right := camera.Basis()
	speed := s.config.Physics.MoveSpeed

	if input.Forward {
		player.Position = player.Position.Add(forward.Mul(speed))
	}
	if input.Back {
		player.Position = player.Position.Add(forward.Mul(-speed))
	}
	if input.Left {
		player.Position = player.Position.Add(right.Mul(-speed))
	}
	if input.Right {
		player.Position = player.Position.Add(right.Mul(speed))
	}
}
