package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// Resolution is what one frame of collision and progress checks produced
type Resolution struct {
	GroundedPlatform int   // entity.NoPlatform when airborne
	Checkpoints      []int // indexes passed this frame
	FinishReached    bool
	FellOut          bool
}

// Grounded reports whether the player ended the frame on a platform
func (r Resolution) Grounded() bool {
	return r.GroundedPlatform != entity.NoPlatform
}

// ProgressSystem resolves platform collision, checkpoints, the finish and fall-out
type ProgressSystem struct {
	config  *config.Tuning
	physics *PhysicsSystem
}

// NewProgressSystem creates a new progress system
func NewProgressSystem(cfg *config.Tuning, physics *PhysicsSystem) *ProgressSystem {
	return &ProgressSystem{
		config:  cfg,
		physics: physics,
	}
}

// Resolve runs the post-integration checks in order: platforms, checkpoints,
// finish, fall-out. Finish and fall-out are evaluated independently.
func (s *ProgressSystem) Resolve(player *entity.Player, level *entity.Level) Resolution {
	res := Resolution{
		GroundedPlatform: s.physics.ResolvePlatforms(player, level),
	}

	res.Checkpoints = s.checkCheckpoints(player, level)
	res.FinishReached = s.checkFinish(player, level)
	res.FellOut = s.checkFallOut(player)

	return res
}

// checkCheckpoints marks every unpassed checkpoint in range. Passed ones are skipped.
func (s *ProgressSystem) checkCheckpoints(player *entity.Player, level *entity.Level) []int {
	var passed []int
	for i := range level.Checkpoints {
		cp := &level.Checkpoints[i]
		if cp.Passed {
			continue
		}
		if distance(player.Position, cp.Position) < s.config.Collision.CheckpointRadius {
			cp.Passed = true
			passed = append(passed, i)
		}
	}
	return passed
}

func (s *ProgressSystem) checkFinish(player *entity.Player, level *entity.Level) bool {
	return distance(player.Position, level.Finish.Position) < s.config.Collision.FinishRadius
}

// checkFallOut respawns the player without touching level progress
func (s *ProgressSystem) checkFallOut(player *entity.Player) bool {
	if player.Position.Y() >= s.config.Collision.FallThreshold {
		return false
	}

	r := s.config.Collision.Respawn
	player.Respawn(mgl64.Vec3{r.X, r.Y, r.Z})
	return true
}

func distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}
