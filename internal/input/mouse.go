package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/lainx86/tide/internal/term"
)

// WheelLines is the number of viewport lines moved per wheel notch.
const WheelLines = 3

// HandleWheel scrolls the viewport for a mouse wheel event.
func HandleWheel(msg tea.MouseWheelMsg, t *term.Terminal) {
	switch msg.Button {
	case tea.MouseWheelUp:
		t.ScrollView(WheelLines)
	case tea.MouseWheelDown:
		t.ScrollView(-WheelLines)
	}
}

// Selector tracks an in-progress mouse selection on a terminal.
type Selector struct {
	selecting bool
}

// Press anchors a new selection at the cell under the pointer.
func (s *Selector) Press(t *term.Terminal, col, row int) {
	t.StartSelection(col, row)
	s.selecting = true
}

// Motion extends the selection while the button is held.
func (s *Selector) Motion(t *term.Terminal, col, row int) {
	if !s.selecting {
		return
	}
	t.UpdateSelection(col, row)
}

// Release ends the drag and returns the selected text. The second
// return is false when there was no drag in progress or the selection
// is empty; an empty selection is cleared.
func (s *Selector) Release(t *term.Terminal) (string, bool) {
	if !s.selecting {
		return "", false
	}
	s.selecting = false

	text := t.SelectedText()
	if text == "" {
		t.ClearSelection()
		return "", false
	}
	return text, true
}

// Selecting reports whether a drag is in progress.
func (s *Selector) Selecting() bool { return s.selecting }
