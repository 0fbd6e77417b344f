package term

import "strings"

// Selection is an anchored-extend selection region. Coordinates refer
// to the visible viewport at selection time.
type Selection struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
	Active   bool
}

// normalized returns the selection with start and end in reading
// order: start before end by row, then by column.
func (s Selection) normalized() Selection {
	if s.StartRow > s.EndRow || (s.StartRow == s.EndRow && s.StartCol > s.EndCol) {
		s.StartCol, s.EndCol = s.EndCol, s.StartCol
		s.StartRow, s.EndRow = s.EndRow, s.StartRow
	}
	return s
}

// StartSelection anchors a new selection at (col, row).
func (t *Terminal) StartSelection(col, row int) {
	t.sel = Selection{
		StartCol: col,
		StartRow: row,
		EndCol:   col,
		EndRow:   row,
		Active:   true,
	}
}

// UpdateSelection moves the selection end point. No-op without an
// active selection.
func (t *Terminal) UpdateSelection(col, row int) {
	if !t.sel.Active {
		return
	}
	t.sel.EndCol = col
	t.sel.EndRow = row
}

// ClearSelection deactivates the selection and zeroes its endpoints.
func (t *Terminal) ClearSelection() {
	t.sel = Selection{}
}

// Selection returns the current selection state.
func (t *Terminal) Selection() Selection { return t.sel }

// IsSelected reports whether (col, row) lies inside the selection,
// inclusive at both ends in reading order.
func (t *Terminal) IsSelected(col, row int) bool {
	if !t.sel.Active {
		return false
	}

	sel := t.sel.normalized()

	if row < sel.StartRow || row > sel.EndRow {
		return false
	}
	if sel.StartRow == sel.EndRow {
		return col >= sel.StartCol && col <= sel.EndCol
	}
	if row == sel.StartRow {
		return col >= sel.StartCol
	}
	if row == sel.EndRow {
		return col <= sel.EndCol
	}
	return true
}

// SelectedText extracts the selected region as text. Rows are joined
// with a single newline after trimming the row's trailing spaces; the
// last row gets no newline, which matches how terminals hand padded
// cells to the clipboard. Non-printable cells become spaces.
func (t *Terminal) SelectedText() string {
	if !t.sel.Active {
		return ""
	}

	sel := t.sel.normalized()
	cols := t.grid.Cols()
	rows := t.grid.Rows()

	var b strings.Builder
	for row := sel.StartRow; row <= sel.EndRow; row++ {
		if row < 0 || row >= rows {
			continue
		}

		startCol := 0
		if row == sel.StartRow {
			startCol = max(sel.StartCol, 0)
		}
		endCol := cols - 1
		if row == sel.EndRow {
			endCol = min(sel.EndCol, cols-1)
		}

		var line strings.Builder
		for col := startCol; col <= endCol; col++ {
			r := t.grid.At(col, row).Rune
			if r >= 0x20 && r < 0x7F {
				line.WriteRune(r)
			} else {
				line.WriteByte(' ')
			}
		}

		if row < sel.EndRow {
			b.WriteString(strings.TrimRight(line.String(), " "))
			b.WriteByte('\n')
		} else {
			b.WriteString(line.String())
		}
	}

	return b.String()
}
