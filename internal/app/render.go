package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/lainx86/tide/internal/term"
	"github.com/lainx86/tide/internal/theme"
)

// View renders one frame of the session.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.renderContent())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	// The host cursor tracks the emulated cursor only on the live
	// view; while scrolled the cursor cell is off screen.
	if !m.term.IsScrolled() && !m.quitting {
		col := min(m.term.CursorCol(), m.term.Cols()-1)
		view.Cursor = tea.NewCursor(col, m.term.CursorRow())
	}

	return view
}

// renderContent builds the full frame: one line per viewport row,
// with a history badge overlaid top-right while scrolled.
func (m *Model) renderContent() string {
	cols, rows := m.term.Cols(), m.term.Rows()

	badge := ""
	badgeCols := 0
	if m.term.IsScrolled() {
		badge = m.renderScrollBadge()
		if w := lipgloss.Width(badge); w <= cols {
			badgeCols = w
		}
	}

	var b strings.Builder
	for y := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		limit := cols
		if y == 0 {
			limit = cols - badgeCols
		}
		m.renderRow(&b, m.term.VisibleRow(y), limit, y)
		if y == 0 && badgeCols > 0 {
			b.WriteString(badge)
		}
	}
	return b.String()
}

// styleKey identifies a run of identically styled cells.
type styleKey struct {
	fg       theme.Color
	bg       theme.Color
	flags    term.AttrMask
	selected bool
}

// renderRow emits up to limit cells of a row, batching SGR state over
// runs of identically styled cells. Rows from scrollback may be
// narrower or wider than the current grid; missing cells render blank.
func (m *Model) renderRow(b *strings.Builder, cells []term.Cell, limit, row int) {
	blank := term.Cell{Rune: ' ', Foreground: m.theme.Foreground, Background: m.theme.Background}

	var cur styleKey
	styled := false
	for x := range limit {
		cell := blank
		if x < len(cells) {
			cell = cells[x]
		}

		key := styleKey{
			fg:       cell.Foreground,
			bg:       cell.Background,
			flags:    cell.Flags,
			selected: m.term.IsSelected(x, row),
		}
		if !styled || key != cur {
			b.WriteString("\x1b[0m")
			b.WriteString(m.styleFor(key).String())
			cur = key
			styled = true
		}

		r := cell.Rune
		if r < 0x20 || cell.Flags.Has(term.AttrHidden) {
			r = ' '
		}
		b.WriteRune(r)
	}
	b.WriteString("\x1b[0m")
}

// styleFor converts a style key into the SGR prefix for its run.
// Inverse is already baked into the cell colors at write time, so it
// is not re-applied here.
func (m *Model) styleFor(key styleKey) ansi.Style {
	fg, bg := key.fg, key.bg
	if key.selected {
		bg = m.theme.Selection
	}

	var st ansi.Style
	st = st.ForegroundColor(ansi.Color(fg))
	st = st.BackgroundColor(ansi.Color(bg))

	if key.flags.Has(term.AttrBold) {
		st = st.Bold()
	}
	if key.flags.Has(term.AttrDim) {
		st = st.Faint()
	}
	if key.flags.Has(term.AttrItalic) {
		st = st.Italic(true)
	}
	if key.flags.Has(term.AttrUnderline) {
		st = st.Underline(true)
	}
	if key.flags.Has(term.AttrBlink) {
		st = st.Blink(true)
	}
	if key.flags.Has(term.AttrStrikethrough) {
		st = st.Strikethrough(true)
	}
	return st
}

// renderScrollBadge renders the scrollback position indicator.
func (m *Model) renderScrollBadge() string {
	label := fmt.Sprintf(" history %d/%d ", m.term.ScrollOffset(), m.term.ScrollbackLen())
	return lipgloss.NewStyle().
		Foreground(m.theme.Background).
		Background(m.theme.ANSI[3]).
		Render(label)
}
