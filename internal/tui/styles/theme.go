package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps element classes to lipgloss styles.
type Theme struct {
	Palette *ColorPalette
	classes map[string]lipgloss.Style
}

// NewTheme builds the class styles for p.
func NewTheme(p *ColorPalette) *Theme {
	base := lipgloss.NewStyle()
	return &Theme{
		Palette: p,
		classes: map[string]lipgloss.Style{
			"title":    base.Bold(true).Foreground(p.Primary),
			"subtitle": base.Italic(true).Foreground(p.Muted),
			"muted":    base.Foreground(p.Muted),
			"accent":   base.Foreground(p.Secondary),
			"warning":  base.Foreground(p.Warning),
			"error":    base.Bold(true).Foreground(p.Error),
			"selected": base.Foreground(p.Text).Background(p.Surface).Bold(true),
			"unread":   base.Foreground(p.Text).Bold(true),
			"read":     base.Foreground(p.Muted),
			"key":      base.Foreground(p.Primary).Bold(true),
			"border":   base.Foreground(p.Border),
		},
	}
}

// DefaultTheme returns the theme for the default palette.
func DefaultTheme() *Theme {
	return NewTheme(DefaultPalette())
}

// LoadTheme returns the theme for a YAML theme file, or the default theme
// when path is empty.
func LoadTheme(path string) (*Theme, error) {
	if path == "" {
		return DefaultTheme(), nil
	}
	f, err := LoadThemeFile(path)
	if err != nil {
		return nil, err
	}
	return NewTheme(f.ToPalette()), nil
}

// ClassStyle merges the styles of classes in order; later classes win.
// Unknown classes are ignored.
func (t *Theme) ClassStyle(classes []string) lipgloss.Style {
	s := lipgloss.NewStyle()
	for _, c := range slices.Backward(classes) {
		if cs, ok := t.classes[c]; ok {
			s = s.Inherit(cs)
		}
	}
	return s
}
