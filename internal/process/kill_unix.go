//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid,
// taking the browser's renderer and GPU helpers down with it.
// Non-positive PIDs are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort cleanup; error ignored as launcher.Kill() runs afterwards
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
