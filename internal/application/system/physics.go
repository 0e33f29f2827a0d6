package system

import (
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// PhysicsSystem integrates gravity and resolves the player against platforms
type PhysicsSystem struct {
	config *config.Tuning
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.Tuning) *PhysicsSystem {
	return &PhysicsSystem{config: cfg}
}

// ApplyGravity runs every frame, grounded or not. Collision cancels it again.
func (s *PhysicsSystem) ApplyGravity(player *entity.Player) {
	player.VelocityY += s.config.Physics.Gravity
	player.Position[1] += player.VelocityY
}

// ResolvePlatforms recomputes Grounded from scratch. Platforms are tested in
// generation order and the first one inside the landing band wins.
// Returns the index of the platform the player stands on, or entity.NoPlatform.
func (s *PhysicsSystem) ResolvePlatforms(player *entity.Player, level *entity.Level) int {
	player.Grounded = false

	for i, platform := range level.Platforms {
		if !s.landsOn(player, platform) {
			continue
		}

		player.Position[1] = platform.Position.Y() + s.config.Collision.StandOffset
		player.VelocityY = 0
		player.Grounded = true
		player.LastPlatform = i
		return i
	}

	return entity.NoPlatform
}

// landsOn checks the footprint and the vertical band (top-below, top+above), both open
func (s *PhysicsSystem) landsOn(player *entity.Player, platform entity.Platform) bool {
	pos := player.Position
	if !platform.ContainsXZ(pos.X(), pos.Z()) {
		return false
	}

	top := platform.Position.Y()
	return pos.Y() > top-s.config.Collision.LandBelow && pos.Y() < top+s.config.Collision.LandAbove
}
