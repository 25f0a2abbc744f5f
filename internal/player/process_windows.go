//go:build windows

package player

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// setupPlayerProcess detaches the player from the TUI's console
func setupPlayerProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | 0x00000008, // DETACHED_PROCESS
	}
}

// stopPlayerProcess kills the player
func stopPlayerProcess(cmd *exec.Cmd) error {
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
