// Package input translates host keyboard and mouse events into the
// byte sequences and core operations the terminal expects.
package input

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// KeySequence returns the bytes a key press writes to the pty, or nil
// when the key produces no output.
func KeySequence(msg tea.KeyPressMsg) []byte {
	key := msg.String()

	switch key {
	case "enter":
		return []byte{'\n'}
	case "backspace":
		return []byte{0x7F}
	case "tab":
		return []byte{'\t'}
	case "esc":
		return []byte{0x1B}
	case "up":
		return []byte("\x1b[A")
	case "down":
		return []byte("\x1b[B")
	case "right":
		return []byte("\x1b[C")
	case "left":
		return []byte("\x1b[D")
	case "home":
		return []byte("\x1b[H")
	case "end":
		return []byte("\x1b[F")
	case "pgup":
		return []byte("\x1b[5~")
	case "pgdown":
		return []byte("\x1b[6~")
	case "delete":
		return []byte("\x1b[3~")
	case "space":
		return []byte{' '}
	}

	// Ctrl+letter sends the matching C0 byte (Ctrl+A = 0x01 .. Ctrl+Z = 0x1A).
	if rest, ok := strings.CutPrefix(key, "ctrl+"); ok && len(rest) == 1 {
		if c := rest[0]; c >= 'a' && c <= 'z' {
			return []byte{c - 'a' + 1}
		}
	}

	// Printable input passes through UTF-8 encoded.
	if msg.Text != "" {
		return []byte(msg.Text)
	}
	return nil
}
