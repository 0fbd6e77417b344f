package theme

import (
	"sort"
	"strings"

	tint "github.com/lrstanley/bubbletint/v2"
)

// Theme is a terminal color theme: the 16 standard ANSI colors
// (0-7 normal, 8-15 bright) plus the UI colors.
type Theme struct {
	Name string

	// ANSI holds the standard palette indexed 0..15.
	ANSI [16]Color

	Foreground Color
	Background Color
	Cursor     Color
	Selection  Color
}

// TokyoNight returns the built-in Tokyo Night theme.
func TokyoNight() Theme {
	return Theme{
		Name: "Tokyo Night",
		ANSI: [16]Color{
			FromHex(0x15161e), // 0: black
			FromHex(0xf7768e), // 1: red
			FromHex(0x9ece6a), // 2: green
			FromHex(0xe0af68), // 3: yellow
			FromHex(0x7aa2f7), // 4: blue
			FromHex(0xbb9af7), // 5: magenta
			FromHex(0x7dcfff), // 6: cyan
			FromHex(0xa9b1d6), // 7: white
			FromHex(0x414868), // 8: bright black
			FromHex(0xf7768e), // 9: bright red
			FromHex(0x9ece6a), // 10: bright green
			FromHex(0xe0af68), // 11: bright yellow
			FromHex(0x7aa2f7), // 12: bright blue
			FromHex(0xbb9af7), // 13: bright magenta
			FromHex(0x7dcfff), // 14: bright cyan
			FromHex(0xc0caf5), // 15: bright white
		},
		Foreground: FromHex(0xc0caf5),
		Background: FromHex(0x1a1b26),
		Cursor:     FromHex(0xc0caf5),
		Selection:  FromHex(0x33467c),
	}
}

// Dracula returns the built-in Dracula theme.
func Dracula() Theme {
	return Theme{
		Name: "Dracula",
		ANSI: [16]Color{
			FromHex(0x21222c), // 0: black
			FromHex(0xff5555), // 1: red
			FromHex(0x50fa7b), // 2: green
			FromHex(0xf1fa8c), // 3: yellow
			FromHex(0xbd93f9), // 4: blue
			FromHex(0xff79c6), // 5: magenta
			FromHex(0x8be9fd), // 6: cyan
			FromHex(0xf8f8f2), // 7: white
			FromHex(0x6272a4), // 8: bright black
			FromHex(0xff6e6e), // 9: bright red
			FromHex(0x69ff94), // 10: bright green
			FromHex(0xffffa5), // 11: bright yellow
			FromHex(0xd6acff), // 12: bright blue
			FromHex(0xff92df), // 13: bright magenta
			FromHex(0xa4ffff), // 14: bright cyan
			FromHex(0xffffff), // 15: bright white
		},
		Foreground: FromHex(0xf8f8f2),
		Background: FromHex(0x282a36),
		Cursor:     FromHex(0xf8f8f2),
		Selection:  FromHex(0x44475a),
	}
}

// Default returns the default theme.
func Default() Theme { return TokyoNight() }

func builtins() []Theme {
	return []Theme{TokyoNight(), Dracula()}
}

// normalizeName lowercases a theme name and strips spaces, dashes and
// underscores so "tokyo-night", "Tokyo Night" and "tokyonight" all match.
func normalizeName(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(name))
}

// Lookup resolves a theme by name. Built-ins and custom themes take
// precedence; any tint registered with bubbletint resolves next.
func Lookup(name string) (Theme, bool) {
	want := normalizeName(name)
	for _, t := range builtins() {
		if normalizeName(t.Name) == want {
			return t, true
		}
	}
	for _, t := range customThemes {
		if normalizeName(t.Name) == want {
			return t, true
		}
	}
	tint.NewDefaultRegistry()
	for _, id := range tint.TintIDs() {
		if normalizeName(id) == want {
			if tint.SetTintID(id) {
				return FromTint(tint.Current()), true
			}
		}
	}
	return Theme{}, false
}

// Names returns every known theme name: built-ins first (in fixed
// order), then custom themes, then the bubbletint registry, the last
// two groups each sorted.
func Names() []string {
	var names []string
	for _, t := range builtins() {
		names = append(names, t.Name)
	}
	var custom []string
	for _, t := range customThemes {
		custom = append(custom, t.Name)
	}
	sort.Strings(custom)
	names = append(names, custom...)

	tint.NewDefaultRegistry()
	ids := tint.TintIDs()
	sort.Strings(ids)
	names = append(names, ids...)
	return names
}

// FromTint converts a bubbletint tint into a Theme. The tint registry
// has no selection color, so the selection highlight is derived by
// blending the foreground into the background.
func FromTint(t *tint.Tint) Theme {
	if t == nil {
		return Default()
	}
	th := Theme{
		Name: t.DisplayName,
		ANSI: [16]Color{
			FromColor(t.Black),
			FromColor(t.Red),
			FromColor(t.Green),
			FromColor(t.Yellow),
			FromColor(t.Blue),
			FromColor(t.Purple),
			FromColor(t.Cyan),
			FromColor(t.White),
			FromColor(t.BrightBlack),
			FromColor(t.BrightRed),
			FromColor(t.BrightGreen),
			FromColor(t.BrightYellow),
			FromColor(t.BrightBlue),
			FromColor(t.BrightPurple),
			FromColor(t.BrightCyan),
			FromColor(t.BrightWhite),
		},
		Foreground: FromColor(t.Fg),
		Background: FromColor(t.Bg),
		Cursor:     FromColor(t.Cursor),
	}
	if th.Name == "" {
		th.Name = t.ID
	}
	th.Selection = th.Background.Blend(th.Foreground, 0.25)
	return th
}
