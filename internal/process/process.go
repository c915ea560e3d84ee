// Package process terminates the headless browser started for PDF output
// together with the helper processes it spawns.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID rejects PIDs that would address the caller's own process
// group or every process the user owns.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree kills pid and its children. Failures after validation are
// ignored: the caller always follows up with its own kill of the root process.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	killTree(pid)
	return nil
}
