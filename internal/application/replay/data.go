package replay

import "github.com/younwookim/obby/internal/domain/entity"

// FormatVersion is written into every recording
const FormatVersion = "1.0"

// Command is a session transition recorded between ticks
type Command string

const (
	CmdRestart Command = "restart"
	CmdNext    Command = "next"
)

// FrameInput records input state for a single frame.
// A frame with Cmd set carries no input: the command runs instead of a tick.
type FrameInput struct {
	F   int     `json:"f"`             // Frame number
	Fw  bool    `json:"fw,omitempty"`  // Forward
	Bk  bool    `json:"bk,omitempty"`  // Back
	L   bool    `json:"l,omitempty"`   // Strafe left
	R   bool    `json:"r,omitempty"`   // Strafe right
	JP  bool    `json:"jp,omitempty"`  // JumpPressed
	LX  float64 `json:"lx,omitempty"`  // Look delta X
	LY  float64 `json:"ly,omitempty"`  // Look delta Y
	Cmd Command `json:"cmd,omitempty"` // Transition instead of a tick
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version    string            `json:"version"`
	SessionID  string            `json:"sessionId"`
	PlayerName string            `json:"playerName"`
	Difficulty entity.Difficulty `json:"difficulty"` // written as its name, see entity.Difficulty.MarshalText
	Framerate  int               `json:"framerate"`
	StartTime  string            `json:"startTime"`
	Frames     []FrameInput      `json:"frames"`
}
