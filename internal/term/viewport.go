package term

// ScrollView moves the viewport by delta lines into history (positive
// scrolls up, negative back down). The offset clamps to the available
// scrollback.
func (t *Terminal) ScrollView(delta int) {
	t.scrollOffset += delta
	if t.scrollOffset < 0 {
		t.scrollOffset = 0
	}
	if t.scrollOffset > t.scrollback.Len() {
		t.scrollOffset = t.scrollback.Len()
	}
}

// ScrollToBottom restores the live view.
func (t *Terminal) ScrollToBottom() { t.scrollOffset = 0 }

// IsScrolled reports whether the viewport shows any history.
func (t *Terminal) IsScrolled() bool { return t.scrollOffset > 0 }

// ScrollOffset returns the number of history lines scrolled above the
// live grid.
func (t *Terminal) ScrollOffset() int { return t.scrollOffset }

// ScrollbackLen returns the number of rows saved in scrollback.
func (t *Terminal) ScrollbackLen() int { return t.scrollback.Len() }

// VisibleRow resolves a viewport row to its cells. During a partial
// scroll the top of the viewport comes from scrollback and the bottom
// from the live grid; fully scrolled (offset >= rows) the whole
// viewport is history. Returns nil for rows outside the viewport.
// The returned slice aliases terminal storage and must not be
// retained across a Feed or Resize.
func (t *Terminal) VisibleRow(visualRow int) []Cell {
	rows := t.grid.Rows()

	if t.scrollOffset == 0 {
		if visualRow < 0 || visualRow >= rows {
			return nil
		}
		return t.grid.Row(visualRow)
	}

	shown := min(t.scrollOffset, rows)
	start := t.scrollback.Len() - t.scrollOffset

	if visualRow < 0 {
		return nil
	}
	if visualRow < shown {
		return t.scrollback.Row(start + visualRow)
	}
	gridRow := visualRow - shown
	if gridRow >= rows {
		return nil
	}
	return t.grid.Row(gridRow)
}
