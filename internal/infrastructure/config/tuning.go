package config

import (
	"errors"
	"fmt"
)

// Tuning is the root config for tuning.json
type Tuning struct {
	Display      DisplayConfig               `json:"display"`
	Physics      PhysicsConfig               `json:"physics"`
	Collision    CollisionConfig             `json:"collision"`
	Generation   GenerationConfig            `json:"generation"`
	Difficulties map[string]DifficultyConfig `json:"difficulties"`
}

type DisplayConfig struct {
	ScreenWidth  int     `json:"screenWidth"`
	ScreenHeight int     `json:"screenHeight"`
	Scale        int     `json:"scale"`
	Framerate    int     `json:"framerate"`
	WorldScale   float64 `json:"worldScale"` // pixels per world unit in the top-down view
}

// PhysicsConfig values are per frame, not per second
type PhysicsConfig struct {
	Gravity         float64 `json:"gravity"`
	JumpPower       float64 `json:"jumpPower"`
	MoveSpeed       float64 `json:"moveSpeed"`
	LookSensitivity float64 `json:"lookSensitivity"`
	CameraDistance  float64 `json:"cameraDistance"`
	CameraHeight    float64 `json:"cameraHeight"`
}

type CollisionConfig struct {
	LandBelow        float64 `json:"landBelow"`   // band start below the platform top
	LandAbove        float64 `json:"landAbove"`   // band end above the platform top
	StandOffset      float64 `json:"standOffset"` // resting height above the platform top
	CheckpointRadius float64 `json:"checkpointRadius"`
	FinishRadius     float64 `json:"finishRadius"`
	FallThreshold    float64 `json:"fallThreshold"`
	Spawn            Vec3    `json:"spawn"`
	Respawn          Vec3    `json:"respawn"`
}

type GenerationConfig struct {
	BaseCount       int     `json:"baseCount"`
	PerLevel        int     `json:"perLevel"`
	PlatformY       float64 `json:"platformY"`
	PlatformLength  float64 `json:"platformLength"`
	WeaveAmplitude  float64 `json:"weaveAmplitude"`
	WeaveFrequency  float64 `json:"weaveFrequency"`
	CheckpointEvery int     `json:"checkpointEvery"`
	CheckpointLift  float64 `json:"checkpointLift"`
}

type DifficultyConfig struct {
	PlatformGap   float64 `json:"platformGap"`
	PlatformWidth float64 `json:"platformWidth"`
}

// Vec3 is a JSON-friendly position
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RequiredDifficulties lists the keys every difficulty table must carry
var RequiredDifficulties = []string{"easy", "normal", "hard"}

// Default returns the built-in tuning used when no file is supplied
func Default() *Tuning {
	return &Tuning{
		Display: DisplayConfig{
			ScreenWidth:  480,
			ScreenHeight: 360,
			Scale:        2,
			Framerate:    60,
			WorldScale:   8,
		},
		Physics: PhysicsConfig{
			Gravity:         -0.02,
			JumpPower:       0.35,
			MoveSpeed:       0.2,
			LookSensitivity: 0.005,
			CameraDistance:  3,
			CameraHeight:    1.5,
		},
		Collision: CollisionConfig{
			LandBelow:        0.5,
			LandAbove:        1,
			StandOffset:      0.5,
			CheckpointRadius: 1,
			FinishRadius:     2,
			FallThreshold:    -10,
			Spawn:            Vec3{X: 0, Y: 1, Z: 0},
			Respawn:          Vec3{X: 0, Y: 2, Z: 0},
		},
		Generation: GenerationConfig{
			BaseCount:       10,
			PerLevel:        2,
			PlatformY:       0,
			PlatformLength:  10,
			WeaveAmplitude:  5,
			WeaveFrequency:  0.5,
			CheckpointEvery: 3,
			CheckpointLift:  0.5,
		},
		Difficulties: map[string]DifficultyConfig{
			"easy":   {PlatformGap: 2.5, PlatformWidth: 2.5},
			"normal": {PlatformGap: 3.0, PlatformWidth: 2.0},
			"hard":   {PlatformGap: 3.5, PlatformWidth: 1.5},
		},
	}
}

// Difficulty returns the parameters for the named difficulty
func (t *Tuning) Difficulty(name string) (DifficultyConfig, bool) {
	d, ok := t.Difficulties[name]
	return d, ok
}

// Validate checks the values the simulation divides by or loops over
func (t *Tuning) Validate() error {
	var errs []error

	if t.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("display.framerate must be positive, got %d", t.Display.Framerate))
	}
	if t.Generation.BaseCount < 0 || t.Generation.PerLevel < 0 {
		errs = append(errs, errors.New("generation counts must not be negative"))
	}
	if t.Generation.CheckpointEvery <= 0 {
		errs = append(errs, fmt.Errorf("generation.checkpointEvery must be positive, got %d", t.Generation.CheckpointEvery))
	}
	if t.Collision.CheckpointRadius <= 0 || t.Collision.FinishRadius <= 0 {
		errs = append(errs, errors.New("collision radii must be positive"))
	}
	for _, name := range RequiredDifficulties {
		d, ok := t.Difficulties[name]
		if !ok {
			errs = append(errs, fmt.Errorf("difficulty %q missing", name))
			continue
		}
		if d.PlatformGap <= 0 || d.PlatformWidth <= 0 {
			errs = append(errs, fmt.Errorf("difficulty %q needs positive gap and width", name))
		}
	}

	return errors.Join(errs...)
}
