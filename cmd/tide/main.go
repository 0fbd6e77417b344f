// Package main implements tide, a terminal emulator core hosted in
// the current terminal: it spawns a shell on a pty, interprets its
// ANSI/VT output into a cell grid with scrollback, and renders the
// grid with mouse selection and history scrolling.
package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lainx86/tide/internal/app"
	"github.com/lainx86/tide/internal/config"
	"github.com/lainx86/tide/internal/theme"
)

// Version information (set by the release pipeline).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	themeName  string
	listThemes bool
	shellPath  string
	scrollback int
	debugMode  bool
	logFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tide",
		Short: "A terminal emulator",
		Long: `tide - a terminal emulator

tide runs a shell on a pseudo-terminal and emulates an ANSI/VT terminal:
a bounded cell grid with scrollback history, mouse selection with
clipboard extraction, and themeable colors.`,
		Example: `  # Run tide
  tide

  # Run with a specific theme
  tide --theme dracula

  # List all available themes
  tide --list-themes

  # Run zsh with a larger scrollback
  tide --shell /bin/zsh --scrollback 50000`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}

	rootCmd.Flags().StringVar(&themeName, "theme", "", "color theme name")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "list available themes and exit")
	rootCmd.Flags().StringVar(&shellPath, "shell", "", "shell to spawn (defaults to $SHELL)")
	rootCmd.Flags().IntVar(&scrollback, "scrollback", 0, "lines of scrollback history")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "debug log file path")

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// Custom themes register before any lookup so they resolve ahead of
	// the bubbletint registry (built-ins still match first).
	if dir, err := theme.ThemesDir(); err == nil {
		_, _ = theme.LoadCustomThemes(dir)
	}

	if listThemes {
		for _, name := range theme.Names() {
			fmt.Println(name)
		}
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("tide must be run from a terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if themeName == "" {
		themeName = cfg.Appearance.Theme
	}
	if shellPath == "" {
		shellPath = cfg.Terminal.PreferredShell
	}
	if scrollback == 0 {
		scrollback = cfg.Appearance.ScrollbackLines
	}

	th, ok := theme.Lookup(themeName)
	if !ok {
		if themeName != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %s\n", themeName, theme.Default().Name)
		}
		th = theme.Default()
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Info("starting tide", "session", uuid.NewString(), "version", version, "theme", th.Name)
	}

	model, err := app.New(app.Options{
		Theme:           th,
		Shell:           shellPath,
		Cols:            cfg.Terminal.Cols,
		Rows:            cfg.Terminal.Rows,
		ScrollbackLines: scrollback,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	defer model.Close() //nolint:errcheck

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// newLogger builds the debug logger, or nil when logging is disabled.
func newLogger() (*log.Logger, error) {
	if !debugMode {
		return nil, nil
	}

	path := logFile
	if path == "" {
		var err error
		path, err = xdg.StateFile("tide/debug.log")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 - user-chosen log path
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, nil
}
