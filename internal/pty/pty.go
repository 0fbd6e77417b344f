// Package pty bridges the emulation core to a child shell process
// attached to a pseudo-terminal.
package pty

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/charmbracelet/x/xpty"
)

// ReadBufferSize is the size of the buffer used for pty reads.
const ReadBufferSize = 4096

// Session is a running shell attached to a pseudo-terminal.
type Session struct {
	pty xpty.Pty
	cmd *exec.Cmd

	waitOnce sync.Once
	waitErr  error
}

// Spawn starts shell (or the detected default when empty) on a new
// pseudo-terminal of the given size.
func Spawn(shell string, cols, rows int) (*Session, error) {
	if shell == "" {
		shell = DetectShell()
	}

	// #nosec G204 - the shell is intentionally user-controlled
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"TERM_PROGRAM=tide",
	)

	p, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate pty: %w", err)
	}

	if err := p.Start(cmd); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("failed to start %s: %w", shell, err)
	}

	// Some pty implementations only accept a resize once the child is
	// running.
	_ = p.Resize(cols, rows)

	return &Session{pty: p, cmd: cmd}, nil
}

// Read reads pending output from the child. It blocks until data is
// available or the pty closes.
func (s *Session) Read(buf []byte) (int, error) {
	return s.pty.Read(buf)
}

// Write sends input bytes to the child.
func (s *Session) Write(data []byte) (int, error) {
	return s.pty.Write(data)
}

// Resize propagates new grid dimensions to the child.
func (s *Session) Resize(cols, rows int) error {
	if err := s.pty.Resize(cols, rows); err != nil {
		return fmt.Errorf("failed to resize pty: %w", err)
	}
	return nil
}

// Wait blocks until the child process exits. Safe to call from
// multiple goroutines.
func (s *Session) Wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.cmd.Wait()
	})
	return s.waitErr
}

// Close terminates the session and releases the pty.
func (s *Session) Close() error {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	if err := s.pty.Close(); err != nil {
		return fmt.Errorf("failed to close pty: %w", err)
	}
	return nil
}

// DetectShell picks the shell to spawn: $SHELL when set, then a list
// of platform candidates.
func DetectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	if runtime.GOOS == "windows" {
		for _, shell := range []string{"powershell.exe", "pwsh.exe", "cmd.exe"} {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}

	for _, shell := range []string{"/bin/bash", "/bin/zsh", "/bin/fish", "/bin/sh"} {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}
