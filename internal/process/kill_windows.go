//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree runs taskkill with /T so child processes go too.
func killTree(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
