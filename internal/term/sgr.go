package term

import "github.com/lainx86/tide/internal/theme"

// selectGraphicRendition applies an SGR parameter list to the current
// attributes. An empty list resets to defaults. Codes are scanned left
// to right; the multi-part color forms (38;5;n, 38;2;r;g;b and the 48
// equivalents) consume their sub-parameters.
func (t *Terminal) selectGraphicRendition(params []int) {
	if len(params) == 0 {
		t.attrs = NewAttributes(t.theme)
		return
	}

	for i := 0; i < len(params); i++ {
		code := params[i]

		switch {
		case code == 0:
			t.attrs = NewAttributes(t.theme)
		case code == 1:
			t.attrs.Flags |= AttrBold
		case code == 2:
			t.attrs.Flags |= AttrDim
		case code == 3:
			t.attrs.Flags |= AttrItalic
		case code == 4:
			t.attrs.Flags |= AttrUnderline
		case code == 5:
			t.attrs.Flags |= AttrBlink
		case code == 7:
			t.attrs.Flags |= AttrInverse
		case code == 8:
			t.attrs.Flags |= AttrHidden
		case code == 9:
			t.attrs.Flags |= AttrStrikethrough
		case code == 21, code == 22:
			// 21 is double underline elsewhere; here both clear
			// intensity, matching the VT "normal intensity" pairing.
			t.attrs.Flags &^= AttrBold | AttrDim
		case code == 23:
			t.attrs.Flags &^= AttrItalic
		case code == 24:
			t.attrs.Flags &^= AttrUnderline
		case code == 25:
			t.attrs.Flags &^= AttrBlink
		case code == 27:
			t.attrs.Flags &^= AttrInverse
		case code == 28:
			t.attrs.Flags &^= AttrHidden
		case code == 29:
			t.attrs.Flags &^= AttrStrikethrough

		case code >= 30 && code <= 37:
			t.attrs.Foreground = t.theme.ANSI[code-30]
		case code == 38:
			c, consumed, ok := t.extendedColor(params[i+1:])
			if ok {
				t.attrs.Foreground = c
			}
			i += consumed
		case code == 39:
			t.attrs.Foreground = t.theme.Foreground

		case code >= 40 && code <= 47:
			t.attrs.Background = t.theme.ANSI[code-40]
		case code == 48:
			c, consumed, ok := t.extendedColor(params[i+1:])
			if ok {
				t.attrs.Background = c
			}
			i += consumed
		case code == 49:
			t.attrs.Background = t.theme.Background

		case code >= 90 && code <= 97:
			t.attrs.Foreground = t.theme.ANSI[code-90+8]
		case code >= 100 && code <= 107:
			t.attrs.Background = t.theme.ANSI[code-100+8]
		}
	}
}

// extendedColor decodes the sub-parameters following a 38 or 48 code.
// rest starts at the parameter after the introducer. It returns the
// color, the number of sub-parameters consumed, and whether a color
// was produced. Indexed colors beyond the 16-entry palette are
// consumed but produce no color change.
func (t *Terminal) extendedColor(rest []int) (theme.Color, int, bool) {
	switch {
	case len(rest) >= 2 && rest[0] == 5:
		// 256-color form: 38;5;n. Only palette indices are honored.
		if n := rest[1]; n >= 0 && n < 16 {
			return t.theme.ANSI[n], 2, true
		}
		return theme.Color{}, 2, false
	case len(rest) >= 4 && rest[0] == 2:
		// Truecolor form: 38;2;r;g;b.
		c := theme.Color{
			R: float64(rest[1]) / 255.0,
			G: float64(rest[2]) / 255.0,
			B: float64(rest[3]) / 255.0,
			A: 1.0,
		}
		return c, 4, true
	}
	// Missing sub-parameters end the sub-sequence without error.
	return theme.Color{}, 0, false
}
