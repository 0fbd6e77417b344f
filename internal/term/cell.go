package term

import "github.com/lainx86/tide/internal/theme"

// AttrMask is a bit set of text attribute flags.
type AttrMask uint16

const (
	// AttrBold renders text with increased intensity.
	AttrBold AttrMask = 1 << iota
	// AttrDim renders text with decreased intensity.
	AttrDim
	// AttrItalic renders text in italics.
	AttrItalic
	// AttrUnderline renders text underlined.
	AttrUnderline
	// AttrBlink marks text as blinking.
	AttrBlink
	// AttrInverse swaps foreground and background.
	AttrInverse
	// AttrHidden marks text as concealed.
	AttrHidden
	// AttrStrikethrough renders text struck through.
	AttrStrikethrough
	// attrDoubleUnderline is reserved for SGR 21 double underline.
	attrDoubleUnderline
)

// Has reports whether all flags in f are set.
func (m AttrMask) Has(f AttrMask) bool { return m&f == f }

// Attributes is the current text styling state applied to newly
// written cells: colors plus the attribute flags.
type Attributes struct {
	Foreground theme.Color
	Background theme.Color
	Flags      AttrMask
}

// NewAttributes returns the default attributes for a theme: theme
// foreground/background, no flags set.
func NewAttributes(th theme.Theme) Attributes {
	return Attributes{
		Foreground: th.Foreground,
		Background: th.Background,
	}
}

// Cell is a single grid position. Cells are value types; writing a
// position replaces the whole cell.
type Cell struct {
	// Rune is the Unicode scalar displayed in the cell.
	Rune rune
	// Foreground and Background are the colors captured when the cell
	// was written. If inverse was active, they are stored pre-swapped.
	Foreground theme.Color
	Background theme.Color
	// Flags are the attribute flags captured when the cell was written.
	Flags AttrMask
}
