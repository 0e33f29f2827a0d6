package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NoPlatform is the LastPlatform value of a player that has not landed yet
const NoPlatform = -1

// Player is the controllable character.
// Position is shared with the renderer; Y is the only axis gravity touches.
type Player struct {
	Position  mgl64.Vec3
	VelocityY float64
	Grounded  bool

	// LastPlatform is an index into the current Level's Platforms.
	// Bookkeeping only; it must be looked up through the Level that produced it.
	LastPlatform int
}

// NewPlayer creates a player standing at spawn
func NewPlayer(spawn mgl64.Vec3) *Player {
	return &Player{
		Position:     spawn,
		Grounded:     true,
		LastPlatform: NoPlatform,
	}
}

// Respawn moves the player to pos and cancels vertical motion
func (p *Player) Respawn(pos mgl64.Vec3) {
	p.Position = pos
	p.VelocityY = 0
}

// Camera holds the look angles in radians.
// Yaw alone drives the movement plane; Pitch only affects the view.
type Camera struct {
	Yaw   float64
	Pitch float64
}

// Look applies mouse deltas scaled by sensitivity and clamps pitch to straight up/down
func (c *Camera) Look(dx, dy, sensitivity float64) {
	c.Yaw -= dx * sensitivity
	c.Pitch -= dy * sensitivity
	c.Pitch = mgl64.Clamp(c.Pitch, -math.Pi/2, math.Pi/2)
}

// Basis returns the horizontal forward and right unit vectors for the current yaw
func (c Camera) Basis() (forward, right mgl64.Vec3) {
	sin, cos := math.Sincos(c.Yaw)
	forward = mgl64.Vec3{sin, 0, -cos}.Normalize()
	right = mgl64.Vec3{cos, 0, sin}.Normalize()
	return forward, right
}

// Follow returns the eye position of a third-person camera trailing target
func (c Camera) Follow(target mgl64.Vec3, distance, height float64) mgl64.Vec3 {
	sin, cos := math.Sincos(c.Yaw)
	return mgl64.Vec3{
		target.X() - sin*distance,
		target.Y() + height,
		target.Z() + cos*distance,
	}
}
