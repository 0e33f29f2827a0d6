package session

import "fmt"

// FormatTime renders whole seconds as M:SS. Minutes are not padded or capped.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
