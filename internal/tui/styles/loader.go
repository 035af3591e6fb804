package styles

import (
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/reactor/internal/errors"
)

// ThemeFile represents a custom theme definition loaded from YAML.
//
//	name: Midnight
//	version: "1"
//	base: nord
//	colors:
//	  primary: "#FF79C6"
type ThemeFile struct {
	// Name is the theme's display name
	Name string `yaml:"name"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Base is the built-in theme supplying colors the file leaves out
	Base string `yaml:"base,omitempty"`
	// Colors overrides palette entries
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains color overrides in hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary   string `yaml:"primary,omitempty"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted,omitempty"`
	Surface   string `yaml:"surface,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Border    string `yaml:"border,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseThemeFile(data)
}

// ParseThemeFile decodes and validates a YAML theme.
func ParseThemeFile(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.NewValidationError("theme name is required").WithField("name")
	}
	if t.Version != "1" {
		return errors.NewValidationError("unsupported theme version (supported: 1)").
			WithField("version").WithValue(t.Version)
	}
	if t.Base != "" && !IsBuiltinTheme(t.Base) {
		return errors.NewValidationError("unknown base theme").WithField("base").WithValue(t.Base)
	}

	colors := []struct{ name, value string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range colors {
		if c.value != "" && !isValidHexColor(c.value) {
			return errors.NewValidationError("invalid color format (expected #RGB or #RRGGBB)").
				WithField("colors." + c.name).WithValue(c.value)
		}
	}
	return nil
}

// isValidHexColor checks if a string is a valid hex color.
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	p := GetPalette(ThemeName(t.Base))
	p.Primary = colorOrDefault(t.Colors.Primary, p.Primary)
	p.Secondary = colorOrDefault(t.Colors.Secondary, p.Secondary)
	p.Warning = colorOrDefault(t.Colors.Warning, p.Warning)
	p.Error = colorOrDefault(t.Colors.Error, p.Error)
	p.Muted = colorOrDefault(t.Colors.Muted, p.Muted)
	p.Surface = colorOrDefault(t.Colors.Surface, p.Surface)
	p.Text = colorOrDefault(t.Colors.Text, p.Text)
	p.Border = colorOrDefault(t.Colors.Border, p.Border)
	return p
}

// colorOrDefault returns the color if non-empty, otherwise returns the default.
func colorOrDefault(color string, defaultColor lipgloss.Color) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return defaultColor
}
