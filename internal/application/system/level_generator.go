package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

// LevelGenerator builds levels from the generation and difficulty tables.
// Output is a pure function of (level index, difficulty): no randomness.
type LevelGenerator struct {
	config *config.Tuning
}

// NewLevelGenerator creates a new level generator
func NewLevelGenerator(cfg *config.Tuning) *LevelGenerator {
	return &LevelGenerator{config: cfg}
}

// PlatformCount returns the number of platforms in level index
func (g *LevelGenerator) PlatformCount(index int) int {
	return g.config.Generation.BaseCount + g.config.Generation.PerLevel*index
}

// Generate creates a fresh Level. index starts at 1; anything lower is a caller bug.
func (g *LevelGenerator) Generate(index int, difficulty entity.Difficulty) *entity.Level {
	if index < 1 {
		panic(fmt.Sprintf("level index must be >= 1, got %d", index))
	}

	gen := g.config.Generation
	params := g.params(difficulty)
	count := g.PlatformCount(index)

	level := &entity.Level{
		Index:       index,
		Difficulty:  difficulty,
		Platforms:   make([]entity.Platform, 0, count),
		Checkpoints: make([]entity.Checkpoint, 0, count/gen.CheckpointEvery),
	}

	for i := 0; i < count; i++ {
		z := float64(i) * params.PlatformGap
		x := math.Sin(float64(i)*gen.WeaveFrequency) * gen.WeaveAmplitude

		level.Platforms = append(level.Platforms, entity.Platform{
			Position: mgl64.Vec3{x, gen.PlatformY, z},
			Width:    params.PlatformWidth,
			Length:   gen.PlatformLength,
		})

		if i > 0 && i%gen.CheckpointEvery == 0 {
			level.Checkpoints = append(level.Checkpoints, entity.Checkpoint{
				Position: mgl64.Vec3{x, gen.PlatformY + gen.CheckpointLift, z},
			})
		}
	}

	// One gap past the last platform, always on the center line
	level.Finish = entity.Finish{
		Position: mgl64.Vec3{0, gen.PlatformY, float64(count) * params.PlatformGap},
	}

	return level
}

// params looks up the difficulty row, falling back to normal like the menu does
func (g *LevelGenerator) params(difficulty entity.Difficulty) config.DifficultyConfig {
	if p, ok := g.config.Difficulty(difficulty.String()); ok {
		return p
	}
	if p, ok := g.config.Difficulty(entity.DifficultyNormal.String()); ok {
		return p
	}
	return config.Default().Difficulties[entity.DifficultyNormal.String()]
}
