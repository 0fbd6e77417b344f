package term

import (
	"strings"
	"testing"

	"github.com/lainx86/tide/internal/theme"
)

func testTheme() theme.Theme { return theme.TokyoNight() }

func newTestTerminal(cols, rows int) *Terminal {
	return New(cols, rows, testTheme())
}

// rowText renders a grid row as a plain string.
func rowText(t *Terminal, row int) string {
	var b strings.Builder
	for col := range t.Cols() {
		b.WriteRune(t.Grid().At(col, row).Rune)
	}
	return b.String()
}

func cellsText(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func TestPrintablePassthrough(t *testing.T) {
	term := newTestTerminal(10, 3)
	term.Feed([]byte("Hello"))

	want := "Hello"
	for i, r := range want {
		cell := term.Grid().At(i, 0)
		if cell.Rune != r {
			t.Errorf("cell (%d,0) = %q, want %q", i, cell.Rune, r)
		}
		if cell.Foreground != testTheme().Foreground {
			t.Errorf("cell (%d,0) foreground = %v, want theme foreground", i, cell.Foreground)
		}
		if cell.Background != testTheme().Background {
			t.Errorf("cell (%d,0) background = %v, want theme background", i, cell.Background)
		}
	}
	if term.CursorCol() != 5 || term.CursorRow() != 0 {
		t.Errorf("cursor = (%d,%d), want (5,0)", term.CursorCol(), term.CursorRow())
	}
}

func TestLineWrap(t *testing.T) {
	term := newTestTerminal(5, 2)
	term.Feed([]byte("ABCDEFG"))

	if got := rowText(term, 0); got != "ABCDE" {
		t.Errorf("row 0 = %q, want %q", got, "ABCDE")
	}
	if got := rowText(term, 1); got != "FG   " {
		t.Errorf("row 1 = %q, want %q", got, "FG   ")
	}
	if term.CursorCol() != 2 || term.CursorRow() != 1 {
		t.Errorf("cursor = (%d,%d), want (2,1)", term.CursorCol(), term.CursorRow())
	}
}

func TestScrollOnOverflow(t *testing.T) {
	term := newTestTerminal(3, 2)
	term.Feed([]byte("a\r\nb\r\nc"))

	if got := rowText(term, 0); got != "b  " {
		t.Errorf("row 0 = %q, want %q", got, "b  ")
	}
	if got := rowText(term, 1); got != "c  " {
		t.Errorf("row 1 = %q, want %q", got, "c  ")
	}
	if term.ScrollbackLen() != 1 {
		t.Fatalf("scrollback length = %d, want 1", term.ScrollbackLen())
	}
	if got := cellsText(term.scrollback.Row(0)); got != "a  " {
		t.Errorf("scrollback row = %q, want %q", got, "a  ")
	}
	if term.CursorCol() != 1 || term.CursorRow() != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", term.CursorCol(), term.CursorRow())
	}
}

func TestSGRColorAndReset(t *testing.T) {
	term := newTestTerminal(10, 3)
	term.Feed([]byte("\x1b[31mX\x1b[0mY"))

	x := term.Grid().At(0, 0)
	if x.Foreground != testTheme().ANSI[1] {
		t.Errorf("X foreground = %v, want palette red", x.Foreground)
	}
	y := term.Grid().At(1, 0)
	if y.Foreground != testTheme().Foreground {
		t.Errorf("Y foreground = %v, want theme foreground", y.Foreground)
	}
	if term.CursorRow() != 0 {
		t.Errorf("cursor row = %d, want 0", term.CursorRow())
	}
}

func TestCSIMotionAndErase(t *testing.T) {
	term := newTestTerminal(10, 5)
	for row := range 5 {
		term.Feed([]byte(".........."))
		if row < 4 {
			term.Feed([]byte("\r\n"))
		}
	}

	term.Feed([]byte("\x1b[3;5H\x1b[K"))

	if term.CursorCol() != 4 || term.CursorRow() != 2 {
		t.Fatalf("cursor = (%d,%d), want (4,2)", term.CursorCol(), term.CursorRow())
	}
	if got := rowText(term, 2); got != "....      " {
		t.Errorf("row 2 = %q, want %q", got, "....      ")
	}
	for _, row := range []int{0, 1, 3, 4} {
		if got := rowText(term, row); got != ".........." {
			t.Errorf("row %d = %q, want untouched dots", row, got)
		}
	}
}

func TestSelectionExtractScenario(t *testing.T) {
	term := newTestTerminal(10, 3)
	term.Feed([]byte("line one\r\nline two"))

	term.StartSelection(0, 0)
	term.UpdateSelection(3, 1)

	if got := term.SelectedText(); got != "line one\nline" {
		t.Errorf("SelectedText() = %q, want %q", got, "line one\nline")
	}
}

func TestSGRResetIdempotent(t *testing.T) {
	once := newTestTerminal(5, 2)
	twice := newTestTerminal(5, 2)

	once.Feed([]byte("\x1b[1;31m"))
	twice.Feed([]byte("\x1b[1;31m"))

	once.Feed([]byte("\x1b[0m"))
	twice.Feed([]byte("\x1b[0m\x1b[0m"))

	if once.Attributes() != twice.Attributes() {
		t.Errorf("attributes differ after single vs double reset: %+v vs %+v",
			once.Attributes(), twice.Attributes())
	}
	if once.Attributes() != NewAttributes(testTheme()) {
		t.Errorf("attributes after reset = %+v, want defaults", once.Attributes())
	}
}

func TestCRLFComposition(t *testing.T) {
	term := newTestTerminal(10, 4)
	term.Feed([]byte("abc")) // cursor (3,0)

	term.Feed([]byte("\r\n"))
	if term.CursorCol() != 0 || term.CursorRow() != 1 {
		t.Fatalf("cursor = (%d,%d), want (0,1)", term.CursorCol(), term.CursorRow())
	}

	// Drive the cursor to the bottom row; the next CRLF scrolls.
	term.Feed([]byte("\r\n\r\n"))
	if term.CursorRow() != 3 {
		t.Fatalf("cursor row = %d, want 3", term.CursorRow())
	}
	before := term.ScrollbackLen()
	term.Feed([]byte("\r\n"))
	if term.CursorCol() != 0 || term.CursorRow() != 3 {
		t.Errorf("cursor = (%d,%d), want (0,3)", term.CursorCol(), term.CursorRow())
	}
	if term.ScrollbackLen() != before+1 {
		t.Errorf("scrollback grew by %d, want 1", term.ScrollbackLen()-before)
	}
	if got := cellsText(term.scrollback.Row(0)); got != "abc       " {
		t.Errorf("scrollback row = %q, want pre-scroll top row", got)
	}
}

func TestCursorClampUnderMotion(t *testing.T) {
	sequences := []string{
		"\x1b[999A", "\x1b[999B", "\x1b[999C", "\x1b[999D",
		"\x1b[500G", "\x1b[500d", "\x1b[100;100H", "\x1b[0;0H",
		"\x1b[A\x1b[D\x1b[999C\x1b[999B",
	}
	for _, seq := range sequences {
		term := newTestTerminal(8, 4)
		term.Feed([]byte(seq))
		if term.CursorCol() < 0 || term.CursorCol() >= 8 ||
			term.CursorRow() < 0 || term.CursorRow() >= 4 {
			t.Errorf("sequence %q left cursor out of range at (%d,%d)",
				seq, term.CursorCol(), term.CursorRow())
		}
	}
}

func TestCursorMotionDefaults(t *testing.T) {
	term := newTestTerminal(10, 5)
	term.Feed([]byte("\x1b[3;3H"))

	// Parameter 0 means unspecified and falls back to 1.
	term.Feed([]byte("\x1b[0A"))
	if term.CursorRow() != 1 {
		t.Errorf("CUU 0 moved to row %d, want 1", term.CursorRow())
	}
	term.Feed([]byte("\x1b[B"))
	if term.CursorRow() != 2 {
		t.Errorf("CUD moved to row %d, want 2", term.CursorRow())
	}
}

func TestCNLAndCPL(t *testing.T) {
	term := newTestTerminal(10, 5)
	term.Feed([]byte("\x1b[2;5H"))

	term.Feed([]byte("\x1b[2E"))
	if term.CursorCol() != 0 || term.CursorRow() != 3 {
		t.Errorf("CNL: cursor = (%d,%d), want (0,3)", term.CursorCol(), term.CursorRow())
	}

	term.Feed([]byte("\x1b[5G\x1b[F"))
	if term.CursorCol() != 0 || term.CursorRow() != 2 {
		t.Errorf("CPL: cursor = (%d,%d), want (0,2)", term.CursorCol(), term.CursorRow())
	}
}

func TestEraseDisplayModes(t *testing.T) {
	fill := func() *Terminal {
		term := newTestTerminal(4, 3)
		term.Feed([]byte("aaaa\r\nbbbb\r\ncccc"))
		term.Feed([]byte("\x1b[2;2H"))
		return term
	}

	term := fill()
	term.Feed([]byte("\x1b[J")) // cursor to end
	if got := rowText(term, 0); got != "aaaa" {
		t.Errorf("ED 0: row 0 = %q, want untouched", got)
	}
	if got := rowText(term, 1); got != "b   " {
		t.Errorf("ED 0: row 1 = %q, want %q", got, "b   ")
	}
	if got := rowText(term, 2); got != "    " {
		t.Errorf("ED 0: row 2 = %q, want blank", got)
	}

	term = fill()
	term.Feed([]byte("\x1b[1J")) // start to cursor, inclusive
	if got := rowText(term, 0); got != "    " {
		t.Errorf("ED 1: row 0 = %q, want blank", got)
	}
	if got := rowText(term, 1); got != "  bb" {
		t.Errorf("ED 1: row 1 = %q, want %q", got, "  bb")
	}
	if got := rowText(term, 2); got != "cccc" {
		t.Errorf("ED 1: row 2 = %q, want untouched", got)
	}

	for _, mode := range []string{"\x1b[2J", "\x1b[3J"} {
		term = fill()
		term.Feed([]byte(mode))
		for row := range 3 {
			if got := rowText(term, row); got != "    " {
				t.Errorf("ED %q: row %d = %q, want blank", mode, row, got)
			}
		}
	}
}

func TestEraseLineModes(t *testing.T) {
	fill := func() *Terminal {
		term := newTestTerminal(6, 1)
		term.Feed([]byte("abcdef"))
		term.Feed([]byte("\x1b[1;3H"))
		return term
	}

	term := fill()
	term.Feed([]byte("\x1b[K"))
	if got := rowText(term, 0); got != "ab    " {
		t.Errorf("EL 0: row = %q, want %q", got, "ab    ")
	}

	term = fill()
	term.Feed([]byte("\x1b[1K"))
	if got := rowText(term, 0); got != "   def" {
		t.Errorf("EL 1: row = %q, want %q", got, "   def")
	}

	term = fill()
	term.Feed([]byte("\x1b[2K"))
	if got := rowText(term, 0); got != "      " {
		t.Errorf("EL 2: row = %q, want blank", got)
	}
}

func TestEraseUsesCurrentForegroundDefaultBackground(t *testing.T) {
	term := newTestTerminal(4, 1)
	term.Feed([]byte("\x1b[31;42mab\x1b[K"))

	blank := term.Grid().At(3, 0)
	if blank.Rune != ' ' {
		t.Errorf("blank rune = %q, want space", blank.Rune)
	}
	if blank.Foreground != testTheme().ANSI[1] {
		t.Errorf("blank foreground = %v, want current (red)", blank.Foreground)
	}
	if blank.Background != testTheme().Background {
		t.Errorf("blank background = %v, want theme default", blank.Background)
	}
}

func TestDeleteChars(t *testing.T) {
	term := newTestTerminal(6, 1)
	term.Feed([]byte("abcdef\x1b[1;2H\x1b[2P"))

	if got := rowText(term, 0); got != "adef  " {
		t.Errorf("DCH: row = %q, want %q", got, "adef  ")
	}

	// Oversized counts clamp to the rest of the row.
	term = newTestTerminal(6, 1)
	term.Feed([]byte("abcdef\x1b[1;3H\x1b[99P"))
	if got := rowText(term, 0); got != "ab    " {
		t.Errorf("DCH oversized: row = %q, want %q", got, "ab    ")
	}
}

func TestInsertChars(t *testing.T) {
	term := newTestTerminal(6, 1)
	term.Feed([]byte("abcdef\x1b[1;2H\x1b[2@"))

	// Blanks shift the tail right; the right edge falls off.
	if got := rowText(term, 0); got != "a  bcd" {
		t.Errorf("ICH: row = %q, want %q", got, "a  bcd")
	}

	term = newTestTerminal(6, 1)
	term.Feed([]byte("abcdef\x1b[1;4H\x1b[99@"))
	if got := rowText(term, 0); got != "abc   " {
		t.Errorf("ICH oversized: row = %q, want %q", got, "abc   ")
	}
}

func TestEraseChars(t *testing.T) {
	term := newTestTerminal(6, 1)
	term.Feed([]byte("abcdef\x1b[1;2H\x1b[3X"))

	// ECH blanks in place without shifting.
	if got := rowText(term, 0); got != "a   ef" {
		t.Errorf("ECH: row = %q, want %q", got, "a   ef")
	}
}

func TestScrollUpCommand(t *testing.T) {
	term := newTestTerminal(3, 3)
	term.Feed([]byte("aaa\r\nbbb\r\nccc"))
	term.Feed([]byte("\x1b[2S"))

	if got := rowText(term, 0); got != "ccc" {
		t.Errorf("SU: row 0 = %q, want %q", got, "ccc")
	}
	for _, row := range []int{1, 2} {
		if got := rowText(term, row); got != "   " {
			t.Errorf("SU: row %d = %q, want blank", row, got)
		}
	}
	if term.ScrollbackLen() != 2 {
		t.Errorf("SU: scrollback length = %d, want 2", term.ScrollbackLen())
	}
}

func TestScrollDownCommand(t *testing.T) {
	term := newTestTerminal(3, 3)
	term.Feed([]byte("aaa\r\nbbb\r\nccc"))
	term.Feed([]byte("\x1b[T"))

	if got := rowText(term, 0); got != "   " {
		t.Errorf("SD: row 0 = %q, want blank", got)
	}
	if got := rowText(term, 1); got != "aaa" {
		t.Errorf("SD: row 1 = %q, want %q", got, "aaa")
	}
	if got := rowText(term, 2); got != "bbb" {
		t.Errorf("SD: row 2 = %q, want %q", got, "bbb")
	}
	// Scroll-down never consults scrollback; the bottom row is lost.
	if term.ScrollbackLen() != 0 {
		t.Errorf("SD: scrollback length = %d, want 0", term.ScrollbackLen())
	}
}

func TestReverseLinefeed(t *testing.T) {
	term := newTestTerminal(3, 2)
	term.Feed([]byte("ab\x1b[2;1Hcd"))

	term.Feed([]byte("\x1b[1;1H\x1bM"))
	if term.CursorRow() != 0 {
		t.Fatalf("cursor row = %d, want 0", term.CursorRow())
	}
	// At the top, reverse linefeed scrolls content down.
	if got := rowText(term, 0); got != "   " {
		t.Errorf("row 0 = %q, want blank", got)
	}
	if got := rowText(term, 1); got != "ab " {
		t.Errorf("row 1 = %q, want %q", got, "ab ")
	}
}

func TestFullReset(t *testing.T) {
	term := newTestTerminal(4, 2)
	term.Feed([]byte("\x1b[1;31mhi\r\n\r\n\r\n")) // scrolls twice
	if term.ScrollbackLen() == 0 {
		t.Fatal("expected scrollback content before reset")
	}

	term.Feed([]byte("\x1bc"))

	if term.CursorCol() != 0 || term.CursorRow() != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", term.CursorCol(), term.CursorRow())
	}
	if term.Attributes() != NewAttributes(testTheme()) {
		t.Errorf("attributes = %+v, want defaults", term.Attributes())
	}
	if term.ScrollbackLen() != 0 {
		t.Errorf("scrollback length = %d, want 0", term.ScrollbackLen())
	}
	for row := range 2 {
		if got := rowText(term, row); got != "    " {
			t.Errorf("row %d = %q, want blank", row, got)
		}
	}
}

func TestIgnoredSequences(t *testing.T) {
	term := newTestTerminal(5, 2)
	// Modes, margins, save/restore and DECSC/DECRC are accepted and
	// ignored; the stream keeps flowing.
	term.Feed([]byte("\x1b[?25l\x1b[4h\x1b[2;4r\x1b[s\x1b[u\x1b7\x1b8ok"))

	if got := rowText(term, 0); got != "ok   " {
		t.Errorf("row 0 = %q, want %q", got, "ok   ")
	}
	if term.CursorCol() != 2 || term.CursorRow() != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0)", term.CursorCol(), term.CursorRow())
	}
}

func TestTabStops(t *testing.T) {
	term := newTestTerminal(20, 1)

	term.Feed([]byte("\t"))
	if term.CursorCol() != 8 {
		t.Errorf("tab from 0: col = %d, want 8", term.CursorCol())
	}
	term.Feed([]byte("\t"))
	if term.CursorCol() != 16 {
		t.Errorf("tab from 8: col = %d, want 16", term.CursorCol())
	}
	term.Feed([]byte("\t"))
	if term.CursorCol() != 19 {
		t.Errorf("tab past end: col = %d, want 19", term.CursorCol())
	}
}

func TestBackspaceClamps(t *testing.T) {
	term := newTestTerminal(5, 1)
	term.Feed([]byte("\b"))
	if term.CursorCol() != 0 {
		t.Errorf("backspace at col 0: col = %d, want 0", term.CursorCol())
	}
	term.Feed([]byte("ab\b"))
	if term.CursorCol() != 1 {
		t.Errorf("backspace after print: col = %d, want 1", term.CursorCol())
	}
}

func TestInverseBakedIntoCell(t *testing.T) {
	term := newTestTerminal(4, 1)
	term.Feed([]byte("\x1b[7mX"))

	cell := term.Grid().At(0, 0)
	if cell.Foreground != testTheme().Background || cell.Background != testTheme().Foreground {
		t.Errorf("inverse cell colors not swapped: fg=%v bg=%v", cell.Foreground, cell.Background)
	}
	if !cell.Flags.Has(AttrInverse) {
		t.Error("inverse flag not recorded on cell")
	}
}

func TestResizeShrinkGrowRoundTrip(t *testing.T) {
	term := newTestTerminal(6, 4)
	term.Feed([]byte("abcdef\r\nghijkl\r\nmnopqr\r\nstuvwx"))

	term.Resize(3, 2)
	if term.Cols() != 3 || term.Rows() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", term.Cols(), term.Rows())
	}
	term.Resize(6, 4)

	// The common rectangle survives the round trip.
	if got := rowText(term, 0)[:3]; got != "abc" {
		t.Errorf("row 0 prefix = %q, want %q", got, "abc")
	}
	if got := rowText(term, 1)[:3]; got != "ghi" {
		t.Errorf("row 1 prefix = %q, want %q", got, "ghi")
	}
	// Everything outside it is blank.
	if got := rowText(term, 0)[3:]; got != "   " {
		t.Errorf("row 0 suffix = %q, want blank", got)
	}
	if got := rowText(term, 3); got != "      " {
		t.Errorf("row 3 = %q, want blank", got)
	}
}

func TestResizeClampsCursor(t *testing.T) {
	term := newTestTerminal(10, 5)
	term.Feed([]byte("\x1b[5;10H"))

	term.Resize(4, 2)
	if term.CursorCol() != 3 || term.CursorRow() != 1 {
		t.Errorf("cursor = (%d,%d), want (3,1)", term.CursorCol(), term.CursorRow())
	}
}

func TestResizeIgnoresInvalidDimensions(t *testing.T) {
	term := newTestTerminal(5, 3)
	term.Feed([]byte("hello"))

	term.Resize(0, 10)
	term.Resize(10, -1)

	if term.Cols() != 5 || term.Rows() != 3 {
		t.Errorf("size changed to %dx%d, want 5x3", term.Cols(), term.Rows())
	}
	if got := rowText(term, 0); got != "hello" {
		t.Errorf("row 0 = %q, want %q", got, "hello")
	}
}

func TestSetThemeRebasesDefaults(t *testing.T) {
	term := newTestTerminal(5, 2)
	dracula := theme.Dracula()
	term.SetTheme(dracula)

	term.Feed([]byte("x"))
	cell := term.Grid().At(0, 0)
	if cell.Foreground != dracula.Foreground || cell.Background != dracula.Background {
		t.Errorf("cell colors = %v/%v, want new theme defaults", cell.Foreground, cell.Background)
	}

	term.Feed([]byte("\x1b[31my"))
	if term.Grid().At(1, 0).Foreground != dracula.ANSI[1] {
		t.Error("SGR 31 should use the new theme palette")
	}
}
