//go:build !windows

package process

import "syscall"

// KillTree ends a launched Chrome together with its renderer and GPU
// helpers. Chrome runs as a process-group leader, so signalling -pid reaches
// every helper that outlived the DevTools connection. Non-positive pids are
// ignored: -0 would address mockshot's own group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
