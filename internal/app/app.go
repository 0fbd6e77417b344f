// Package app wires the emulation core, the pty session and the host
// terminal together as a Bubble Tea program. One goroutine drives the
// event loop; pty output arrives as messages, so every core mutation
// happens on the loop in arrival order.
package app

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	tea "charm.land/bubbletea/v2"

	"github.com/lainx86/tide/internal/input"
	"github.com/lainx86/tide/internal/pty"
	"github.com/lainx86/tide/internal/term"
	"github.com/lainx86/tide/internal/theme"
)

// Options configures a tide session.
type Options struct {
	// Theme is the color theme for the emulator and renderer.
	Theme theme.Theme
	// Shell overrides shell detection when non-empty.
	Shell string
	// Cols and Rows are the initial grid size used until the host
	// reports its real size.
	Cols int
	Rows int
	// ScrollbackLines bounds the history buffer. Zero uses the
	// emulator default.
	ScrollbackLines int
	// Logger receives debug events; nil disables logging.
	Logger *log.Logger
}

// Model is the Bubble Tea model for a tide session.
type Model struct {
	term    *term.Terminal
	session *pty.Session
	theme   theme.Theme

	selector input.Selector

	width  int
	height int

	title    string
	quitting bool

	logger *log.Logger
}

// ptyOutputMsg carries a chunk of child output into the event loop.
type ptyOutputMsg []byte

// ptyClosedMsg reports that the pty read side has closed.
type ptyClosedMsg struct{ err error }

// New spawns the shell and builds the session model.
func New(opts Options) (*Model, error) {
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	session, err := pty.Spawn(opts.Shell, cols, rows)
	if err != nil {
		return nil, err
	}

	t := term.New(cols, rows, opts.Theme)
	if opts.ScrollbackLines > 0 {
		t.SetScrollbackLimit(opts.ScrollbackLines)
	}

	m := &Model{
		term:    t,
		session: session,
		theme:   opts.Theme,
		width:   cols,
		height:  rows,
		logger:  opts.Logger,
	}
	return m, nil
}

// Title returns the window title last set by the child via OSC.
func (m *Model) Title() string { return m.title }

// Init starts the pty reader.
func (m *Model) Init() tea.Cmd {
	return readPty(m.session)
}

// readPty reads one chunk of child output. The read blocks in its own
// goroutine (inside the command), never on the event loop.
func readPty(session *pty.Session) tea.Cmd {
	return func() tea.Msg {
		buf := make([]byte, pty.ReadBufferSize)
		n, err := session.Read(buf)
		if n > 0 {
			return ptyOutputMsg(buf[:n])
		}
		if err != nil {
			return ptyClosedMsg{err: err}
		}
		return ptyOutputMsg(nil)
	}
}

// Update handles one event.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ptyOutputMsg:
		if len(msg) > 0 {
			m.term.Feed(msg)
			if title := m.term.Title(); title != m.title {
				m.title = title
				m.logDebug("title changed", "title", title)
			}
		}
		return m, readPty(m.session)

	case ptyClosedMsg:
		m.logDebug("pty closed", "err", msg.err)
		m.quitting = true
		return m, tea.Quit

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.selector.Press(m.term, mouse.X, mouse.Y)
		}
		return m, nil

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.selector.Motion(m.term, mouse.X, mouse.Y)
		return m, nil

	case tea.MouseReleaseMsg:
		if text, ok := m.selector.Release(m.term); ok {
			if err := clipboard.WriteAll(text); err != nil {
				m.logDebug("clipboard write failed", "err", err)
			}
		}
		return m, nil

	case tea.MouseWheelMsg:
		input.HandleWheel(msg, m.term)
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKey forwards a key press to the child. Typing snaps the
// viewport back to the live view.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+shift+q" {
		m.quitting = true
		return m, tea.Quit
	}

	m.term.ScrollToBottom()

	seq := input.KeySequence(msg)
	if len(seq) == 0 {
		return m, nil
	}
	if _, err := m.session.Write(seq); err != nil {
		m.logDebug("pty write failed", "err", err)
	}
	return m, nil
}

// resize propagates a host size change to the grid and the child.
func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height

	m.term.Resize(width, height)
	m.term.ClearSelection()
	if err := m.session.Resize(width, height); err != nil {
		m.logDebug("pty resize failed", "err", err)
	}
	m.logDebug("resized", "cols", width, "rows", height)
}

// Close tears down the pty session.
func (m *Model) Close() error {
	return m.session.Close()
}

func (m *Model) logDebug(msg string, kv ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, kv...)
	}
}
