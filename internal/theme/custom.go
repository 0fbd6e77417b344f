package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// customThemes holds themes loaded from the user's themes directory.
var customThemes []Theme

// customThemeFile is the on-disk TOML shape of a custom theme. All colors
// are "#rrggbb" strings; missing palette, foreground and background
// fields fall back to xterm defaults, a missing cursor to the foreground
// and a missing selection to a foreground/background blend.
type customThemeFile struct {
	Name       string `toml:"name"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Cursor     string `toml:"cursor"`
	Selection  string `toml:"selection"`

	Black   string `toml:"black"`
	Red     string `toml:"red"`
	Green   string `toml:"green"`
	Yellow  string `toml:"yellow"`
	Blue    string `toml:"blue"`
	Magenta string `toml:"magenta"`
	Cyan    string `toml:"cyan"`
	White   string `toml:"white"`

	BrightBlack   string `toml:"bright_black"`
	BrightRed     string `toml:"bright_red"`
	BrightGreen   string `toml:"bright_green"`
	BrightYellow  string `toml:"bright_yellow"`
	BrightBlue    string `toml:"bright_blue"`
	BrightMagenta string `toml:"bright_magenta"`
	BrightCyan    string `toml:"bright_cyan"`
	BrightWhite   string `toml:"bright_white"`
}

// ThemesDir returns the path to the custom themes directory
// (~/.config/tide/themes/), creating parent directories as needed.
func ThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("tide/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to resolve themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes reads all *.toml files from dir and registers each as
// a custom theme. Bad files are skipped, not fatal; the returned error
// only reports an unreadable directory. Returns the loaded theme names.
func LoadCustomThemes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".toml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		t, err := LoadCustomThemeFile(path)
		if err != nil {
			continue
		}

		customThemes = append(customThemes, t)
		loaded = append(loaded, t.Name)
	}

	return loaded, nil
}

// LoadCustomThemeFile reads a single TOML theme file. The theme name
// defaults to the file name without extension.
func LoadCustomThemeFile(path string) (Theme, error) {
	// #nosec G304 - path comes from the user's own config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file: %w", err)
	}

	var f customThemeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme TOML: %w", err)
	}

	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return f.toTheme(), nil
}

func (f customThemeFile) toTheme() Theme {
	t := Theme{Name: f.Name}

	// xterm defaults for anything the file leaves out.
	defaults := [16]Color{
		FromHex(0x000000), FromHex(0xcd0000), FromHex(0x00cd00), FromHex(0xcdcd00),
		FromHex(0x0000ee), FromHex(0xcd00cd), FromHex(0x00cdcd), FromHex(0xe5e5e5),
		FromHex(0x7f7f7f), FromHex(0xff0000), FromHex(0x00ff00), FromHex(0xffff00),
		FromHex(0x5c5cff), FromHex(0xff00ff), FromHex(0x00ffff), FromHex(0xffffff),
	}
	fields := [16]string{
		f.Black, f.Red, f.Green, f.Yellow, f.Blue, f.Magenta, f.Cyan, f.White,
		f.BrightBlack, f.BrightRed, f.BrightGreen, f.BrightYellow,
		f.BrightBlue, f.BrightMagenta, f.BrightCyan, f.BrightWhite,
	}
	for i, s := range fields {
		t.ANSI[i] = parseOr(s, defaults[i])
	}

	t.Foreground = parseOr(f.Foreground, FromHex(0xe5e5e5))
	t.Background = parseOr(f.Background, FromHex(0x000000))
	t.Cursor = parseOr(f.Cursor, t.Foreground)
	if f.Selection != "" {
		t.Selection = parseOr(f.Selection, Color{})
	} else {
		t.Selection = t.Background.Blend(t.Foreground, 0.25)
	}
	return t
}

func parseOr(s string, fallback Color) Color {
	if s == "" {
		return fallback
	}
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}
