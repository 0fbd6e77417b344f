// Package term implements the terminal emulation core: a multi-state
// byte-stream parser, an executor dispatching control actions onto a
// bounded cell grid, a ring of scrollback history, and the viewport
// and selection state shared with the renderer and input layers.
package term

import "github.com/lainx86/tide/internal/theme"

// Terminal owns the full emulation state: grid, cursor, attributes,
// parser, scrollback, viewport offset and selection. All mutation
// happens on the event-loop goroutine; readers obtain views on demand
// and must not retain them across Feed or Resize.
type Terminal struct {
	grid  *Grid
	theme theme.Theme
	attrs Attributes

	parser *Parser

	cursorCol int
	cursorRow int

	scrollback   *Scrollback
	scrollOffset int

	sel Selection

	title   string
	onTitle func(string)
}

// New creates a terminal with the given dimensions and theme.
// Dimensions must be strictly positive.
func New(cols, rows int, th theme.Theme) *Terminal {
	t := &Terminal{
		theme:      th,
		attrs:      NewAttributes(th),
		scrollback: NewScrollback(MaxScrollback),
	}
	t.grid = NewGrid(cols, rows, t.defaultBlank())
	t.parser = NewParser(t)
	return t
}

// SetScrollbackLimit replaces the scrollback buffer with one holding
// up to maxRows rows. Existing history is dropped.
func (t *Terminal) SetScrollbackLimit(maxRows int) {
	t.scrollback = NewScrollback(maxRows)
	t.scrollOffset = 0
}

// SetTheme replaces the theme snapshot. The current attribute colors
// follow the new theme defaults; already written cells keep the colors
// they were written with.
func (t *Terminal) SetTheme(th theme.Theme) {
	t.theme = th
	t.attrs.Foreground = th.Foreground
	t.attrs.Background = th.Background
}

// Theme returns the current theme snapshot.
func (t *Terminal) Theme() theme.Theme { return t.theme }

// OnTitle registers a callback invoked when an OSC title-set command
// is processed.
func (t *Terminal) OnTitle(fn func(string)) { t.onTitle = fn }

// Title returns the last title set via OSC 0/1/2.
func (t *Terminal) Title() string { return t.title }

// Feed runs a chunk of pty output through the parser. Parser state
// persists across calls, so sequences split between reads are fine.
func (t *Terminal) Feed(data []byte) {
	t.parser.Feed(data)
}

// Grid returns the live cell matrix.
func (t *Terminal) Grid() *Grid { return t.grid }

// Cols returns the grid width.
func (t *Terminal) Cols() int { return t.grid.Cols() }

// Rows returns the grid height.
func (t *Terminal) Rows() int { return t.grid.Rows() }

// CursorCol returns the cursor column.
func (t *Terminal) CursorCol() int { return t.cursorCol }

// CursorRow returns the cursor row.
func (t *Terminal) CursorRow() int { return t.cursorRow }

// Attributes returns the current text attributes.
func (t *Terminal) Attributes() Attributes { return t.attrs }

// Resize reallocates the grid, preserving the top-left common
// rectangle, and clamps the cursor. No reflow is performed.
func (t *Terminal) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	t.grid.Resize(cols, rows, t.defaultBlank())
	t.clampCursor()
}

// Print implements the parser Handler: write one code point at the
// cursor, wrapping to the next line when past the right edge.
func (t *Terminal) Print(r rune) {
	if t.cursorCol >= t.grid.Cols() {
		t.carriageReturn()
		t.linefeed()
	}
	t.grid.Set(t.cursorCol, t.cursorRow, t.makeCell(r))
	t.cursorCol++
}

// Execute implements the parser Handler for C0 control bytes.
func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07: // BEL; the visual bell is a UI concern
	case 0x08: // BS
		t.cursorBack(1)
	case 0x09: // HT, fixed tab stops every 8 columns
		t.cursorCol = ((t.cursorCol / 8) + 1) * 8
		if t.cursorCol >= t.grid.Cols() {
			t.cursorCol = t.grid.Cols() - 1
		}
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.linefeed()
	case 0x0D: // CR
		t.carriageReturn()
	}
}

// HandleEsc implements the parser Handler for single-byte escapes.
func (t *Terminal) HandleEsc(b byte) {
	switch b {
	case 'M': // RI, reverse linefeed
		t.reverseLinefeed()
	case 'D': // IND
		t.linefeed()
	case 'E': // NEL
		t.carriageReturn()
		t.linefeed()
	case 'c': // RIS, full reset
		t.grid.Clear(t.defaultBlank())
		t.cursorCol = 0
		t.cursorRow = 0
		t.attrs = NewAttributes(t.theme)
		t.scrollback.Clear()
		t.scrollOffset = 0
	case '7', '8': // DECSC/DECRC accepted; no cursor state is kept
	}
}

// HandleCsi implements the parser Handler for CSI sequences. Unknown
// final bytes are ignored.
func (t *Terminal) HandleCsi(cmd CsiCommand) {
	switch cmd.Final {
	case 'A': // CUU
		t.cursorUp(cmd.Param(0, 1))
	case 'B': // CUD
		t.cursorDown(cmd.Param(0, 1))
	case 'C': // CUF
		t.cursorForward(cmd.Param(0, 1))
	case 'D': // CUB
		t.cursorBack(cmd.Param(0, 1))
	case 'E': // CNL
		t.cursorDown(cmd.Param(0, 1))
		t.carriageReturn()
	case 'F': // CPL
		t.cursorUp(cmd.Param(0, 1))
		t.carriageReturn()
	case 'G': // CHA
		t.cursorCol = cmd.Param(0, 1) - 1
		t.clampCursor()
	case 'H', 'f': // CUP / HVP, 1-based row;col
		t.cursorRow = cmd.Param(0, 1) - 1
		t.cursorCol = cmd.Param(1, 1) - 1
		t.clampCursor()
	case 'J': // ED
		t.eraseDisplay(cmd.Param(0, 0))
	case 'K': // EL
		t.eraseLine(cmd.Param(0, 0))
	case 'P': // DCH
		t.deleteChars(cmd.Param(0, 1))
	case 'S': // SU
		t.scrollUp(cmd.Param(0, 1))
	case 'T': // SD
		t.scrollDown(cmd.Param(0, 1))
	case 'X': // ECH
		t.eraseChars(cmd.Param(0, 1))
	case '@': // ICH
		t.insertChars(cmd.Param(0, 1))
	case 'd': // VPA
		t.cursorRow = cmd.Param(0, 1) - 1
		t.clampCursor()
	case 'm': // SGR
		t.selectGraphicRendition(cmd.Params)
	case 'h', 'l', 'r', 's', 'u':
		// Modes, margins and cursor save/restore are accepted and
		// ignored.
	}
}

func (t *Terminal) carriageReturn() { t.cursorCol = 0 }

func (t *Terminal) linefeed() {
	if t.cursorRow < t.grid.Rows()-1 {
		t.cursorRow++
	} else {
		t.scrollUp(1)
	}
}

func (t *Terminal) reverseLinefeed() {
	if t.cursorRow > 0 {
		t.cursorRow--
	} else {
		t.scrollDown(1)
	}
}

func (t *Terminal) cursorUp(n int) {
	t.cursorRow = max(0, t.cursorRow-n)
}

func (t *Terminal) cursorDown(n int) {
	t.cursorRow = min(t.grid.Rows()-1, t.cursorRow+n)
}

func (t *Terminal) cursorForward(n int) {
	t.cursorCol = min(t.grid.Cols()-1, t.cursorCol+n)
}

func (t *Terminal) cursorBack(n int) {
	t.cursorCol = max(0, t.cursorCol-n)
}

func (t *Terminal) clampCursor() {
	t.cursorCol = min(max(t.cursorCol, 0), t.grid.Cols()-1)
	t.cursorRow = min(max(t.cursorRow, 0), t.grid.Rows()-1)
}

func (t *Terminal) eraseDisplay(mode int) {
	switch mode {
	case 0: // cursor to end of screen
		t.eraseLine(0)
		for row := t.cursorRow + 1; row < t.grid.Rows(); row++ {
			t.grid.ClearRow(row, t.eraseBlank())
		}
	case 1: // start of screen to cursor
		for row := 0; row < t.cursorRow; row++ {
			t.grid.ClearRow(row, t.eraseBlank())
		}
		t.eraseLine(1)
	case 2, 3: // whole screen
		t.grid.Clear(t.eraseBlank())
	}
}

func (t *Terminal) eraseLine(mode int) {
	blank := t.eraseBlank()
	switch mode {
	case 0: // cursor to end of line
		for col := t.cursorCol; col < t.grid.Cols(); col++ {
			t.grid.Set(col, t.cursorRow, blank)
		}
	case 1: // start of line through cursor, inclusive
		for col := 0; col <= t.cursorCol && col < t.grid.Cols(); col++ {
			t.grid.Set(col, t.cursorRow, blank)
		}
	case 2: // whole line
		t.grid.ClearRow(t.cursorRow, blank)
	}
}

func (t *Terminal) eraseChars(n int) {
	blank := t.eraseBlank()
	end := min(t.cursorCol+n, t.grid.Cols())
	for col := t.cursorCol; col < end; col++ {
		t.grid.Set(col, t.cursorRow, blank)
	}
}

func (t *Terminal) deleteChars(n int) {
	cols := t.grid.Cols()
	if t.cursorCol >= cols {
		return
	}
	n = min(n, cols-t.cursorCol)
	if n <= 0 {
		return
	}
	row := t.grid.Row(t.cursorRow)
	copy(row[t.cursorCol:], row[t.cursorCol+n:])

	blank := t.eraseBlank()
	for col := cols - n; col < cols; col++ {
		row[col] = blank
	}
}

func (t *Terminal) insertChars(n int) {
	cols := t.grid.Cols()
	if t.cursorCol >= cols {
		return
	}
	n = min(n, cols-t.cursorCol)
	if n <= 0 {
		return
	}
	row := t.grid.Row(t.cursorRow)
	copy(row[t.cursorCol+n:], row[t.cursorCol:cols-n])

	blank := t.eraseBlank()
	for col := t.cursorCol; col < t.cursorCol+n; col++ {
		row[col] = blank
	}
}

// scrollUp shifts the grid up by n rows, pushing the evicted top rows
// onto the scrollback and clearing the freed bottom rows.
func (t *Terminal) scrollUp(n int) {
	if n <= 0 {
		return
	}
	rows := t.grid.Rows()
	for i := 0; i < n && i < rows; i++ {
		t.scrollback.Push(t.grid.Row(i))
	}

	for row := 0; row < rows-n; row++ {
		copy(t.grid.Row(row), t.grid.Row(row+n))
	}

	blank := t.defaultBlank()
	for row := max(rows-n, 0); row < rows; row++ {
		t.grid.ClearRow(row, blank)
	}
}

// scrollDown shifts the grid down by n rows and clears the freed top
// rows. Scrollback is not consulted; shifted-off content is lost.
func (t *Terminal) scrollDown(n int) {
	if n <= 0 {
		return
	}
	rows := t.grid.Rows()
	for row := rows - 1; row >= n; row-- {
		copy(t.grid.Row(row), t.grid.Row(row-n))
	}

	blank := t.defaultBlank()
	for row := 0; row < n && row < rows; row++ {
		t.grid.ClearRow(row, blank)
	}
}

// makeCell builds a cell from the current attributes. Inverse is baked
// into the stored cell by swapping the colors at construction time.
func (t *Terminal) makeCell(r rune) Cell {
	fg := t.attrs.Foreground
	bg := t.attrs.Background
	if t.attrs.Flags.Has(AttrInverse) {
		fg, bg = bg, fg
	}
	return Cell{Rune: r, Foreground: fg, Background: bg, Flags: t.attrs.Flags}
}

// eraseBlank is the blank used by erase operations: a space with the
// current foreground over the theme default background.
func (t *Terminal) eraseBlank() Cell {
	return Cell{Rune: ' ', Foreground: t.attrs.Foreground, Background: t.theme.Background}
}

// defaultBlank is the blank used for fresh and scrolled-in rows:
// a space in the theme default colors.
func (t *Terminal) defaultBlank() Cell {
	return Cell{Rune: ' ', Foreground: t.theme.Foreground, Background: t.theme.Background}
}
