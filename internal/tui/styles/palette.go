package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName names a built-in palette.
type ThemeName string

const (
	ThemeDefault ThemeName = "default"
	ThemeMonokai ThemeName = "monokai"
	ThemeDracula ThemeName = "dracula"
	ThemeNord    ThemeName = "nord"
)

// ColorPalette is the set of colors a Theme is built from.
type ColorPalette struct {
	Primary   lipgloss.Color // titles, keys
	Secondary lipgloss.Color // accents
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color // bylines, read stories
	Surface   lipgloss.Color // selected row background
	Text      lipgloss.Color
	Border    lipgloss.Color
}

// Field order: primary, secondary, warning, error, muted, surface, text, border.
var builtinPalettes = map[ThemeName]ColorPalette{
	ThemeDefault: {"#A78BFA", "#10B981", "#F59E0B", "#F87171", "#9CA3AF", "#1F2937", "#F9FAFB", "#6B7280"},
	ThemeMonokai: {"#F92672", "#A6E22E", "#E6DB74", "#F92672", "#75715E", "#272822", "#F8F8F2", "#49483E"},
	ThemeDracula: {"#BD93F9", "#50FA7B", "#F1FA8C", "#FF5555", "#6272A4", "#282A36", "#F8F8F2", "#44475A"},
	ThemeNord:    {"#88C0D0", "#A3BE8C", "#EBCB8B", "#BF616A", "#4C566A", "#2E3440", "#ECEFF4", "#3B4252"},
}

// BuiltinThemes returns the built-in theme names, default first.
func BuiltinThemes() []string {
	return []string{string(ThemeDefault), string(ThemeMonokai), string(ThemeDracula), string(ThemeNord)}
}

// IsBuiltinTheme reports whether name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// GetPalette returns a copy of the named built-in palette. Unknown names,
// including "", get the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	p, ok := builtinPalettes[name]
	if !ok {
		p = builtinPalettes[ThemeDefault]
	}
	return &p
}

// DefaultPalette returns a copy of the default palette.
func DefaultPalette() *ColorPalette { return GetPalette(ThemeDefault) }
