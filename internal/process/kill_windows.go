//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree ends a launched Chrome together with its renderer and GPU
// helpers through taskkill's tree mode. Non-positive pids are ignored.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
