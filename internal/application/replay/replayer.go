package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/obby/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Load loads replay data from a file
func Load(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// Next returns the current frame and advances
func (r *Replayer) Next() (FrameInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return FrameInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi, true
}

// CurrentFrame returns how many frames Next has handed out
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Input converts a recorded frame back into a tick input
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Forward:     fi.Fw,
		Back:        fi.Bk,
		Left:        fi.L,
		Right:       fi.R,
		JumpPressed: fi.JP,
		LookDX:      fi.LX,
		LookDY:      fi.LY,
	}
}

// FrameClock is a session clock that advances one frame per Advance call,
// so replayed timers do not depend on how fast the replay runs.
type FrameClock struct {
	start     time.Time
	frames    int
	framerate int
}

// NewFrameClock creates a clock starting at start
func NewFrameClock(start time.Time, framerate int) *FrameClock {
	if framerate <= 0 {
		framerate = 60
	}
	return &FrameClock{start: start, framerate: framerate}
}

// Now returns start plus the elapsed frames
func (c *FrameClock) Now() time.Time {
	return c.start.Add(time.Duration(c.frames) * time.Second / time.Duration(c.framerate))
}

// Advance moves the clock forward one frame
func (c *FrameClock) Advance() {
	c.frames++
}
