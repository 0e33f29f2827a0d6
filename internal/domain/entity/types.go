package entity

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// PlatformHeight is the fixed thickness of every platform
const PlatformHeight = 0.5

// Difficulty selects the platform spacing and width table used by the generator
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// String returns the config key of the difficulty
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a difficulty name (case-insensitive) into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal", "":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Platform is a walkable box. Position is the center of its top face.
type Platform struct {
	Position mgl64.Vec3
	Width    float64 // extent along X
	Length   float64 // extent along Z
}

// ContainsXZ reports whether (x, z) lies strictly inside the platform footprint
func (p Platform) ContainsXZ(x, z float64) bool {
	halfW := p.Width / 2
	halfL := p.Length / 2
	return x > p.Position.X()-halfW && x < p.Position.X()+halfW &&
		z > p.Position.Z()-halfL && z < p.Position.Z()+halfL
}

// Checkpoint is a progress marker. Passed only ever goes from false to true.
type Checkpoint struct {
	Position mgl64.Vec3
	Passed   bool
}

// Finish marks the end of a level
type Finish struct {
	Position mgl64.Vec3
}

// Level is one generated course. It is replaced wholesale, never regenerated in place.
type Level struct {
	Index       int
	Difficulty  Difficulty
	Platforms   []Platform
	Checkpoints []Checkpoint
	Finish      Finish
}

// Platform returns the platform at index i
func (l *Level) Platform(i int) (Platform, bool) {
	if i < 0 || i >= len(l.Platforms) {
		return Platform{}, false
	}
	return l.Platforms[i], true
}
