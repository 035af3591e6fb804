package styles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name     string
		color    string
		expected bool
	}{
		{"valid 6-digit hex", "#A78BFA", true},
		{"valid 6-digit hex lowercase", "#a78bfa", true},
		{"valid 3-digit hex", "#ABC", true},
		{"invalid - no hash", "A78BFA", false},
		{"invalid - 4 digits", "#ABCD", false},
		{"invalid - bad characters", "#GHIJKL", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidHexColor(tt.color); got != tt.expected {
				t.Errorf("isValidHexColor(%q) = %v, want %v", tt.color, got, tt.expected)
			}
		})
	}
}

func TestParseThemeFile(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{"minimal", "name: Mine\nversion: \"1\"\n", ""},
		{"with base and colors", "name: Mine\nversion: \"1\"\nbase: nord\ncolors:\n  primary: \"#FF79C6\"\n", ""},
		{"missing name", "version: \"1\"\n", "name"},
		{"bad version", "name: Mine\nversion: \"2\"\n", "version"},
		{"unknown base", "name: Mine\nversion: \"1\"\nbase: solarized\n", "base"},
		{"bad color", "name: Mine\nversion: \"1\"\ncolors:\n  muted: gray\n", "colors.muted"},
		{"not yaml", "name: [", "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseThemeFile([]byte(tt.yaml))
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("ParseThemeFile() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ParseThemeFile() error = %v, want one mentioning %q", err, tt.errMsg)
			}
		})
	}
}

func TestThemeFile_ToPalette(t *testing.T) {
	f := &ThemeFile{Name: "Mine", Version: "1", Base: "nord", Colors: ThemeColors{Primary: "#FF79C6"}}
	p := f.ToPalette()

	if p.Primary != lipgloss.Color("#FF79C6") {
		t.Errorf("Primary = %v, want the override", p.Primary)
	}
	if p.Error != GetPalette(ThemeNord).Error {
		t.Errorf("Error = %v, want the nord base color", p.Error)
	}
}

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme("")
	if err != nil || theme.Palette.Primary != DefaultPalette().Primary {
		t.Fatalf("LoadTheme(\"\") = %v, %v; want the default theme", theme, err)
	}

	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("name: D\nversion: \"1\"\nbase: dracula\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	theme, err = LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if theme.Palette.Surface != GetPalette(ThemeDracula).Surface {
		t.Errorf("Surface = %v, want dracula", theme.Palette.Surface)
	}

	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTheme() should fail for a missing file")
	}
}

func TestClassStyle(t *testing.T) {
	theme := DefaultTheme()
	p := theme.Palette

	if fg := theme.ClassStyle([]string{"muted"}).GetForeground(); fg != p.Muted {
		t.Errorf("muted foreground = %v, want %v", fg, p.Muted)
	}
	// Later classes win.
	if fg := theme.ClassStyle([]string{"muted", "error"}).GetForeground(); fg != p.Error {
		t.Errorf("muted+error foreground = %v, want %v", fg, p.Error)
	}
	s := theme.ClassStyle([]string{"selected", "nope"})
	if !s.GetBold() || s.GetBackground() != p.Surface {
		t.Error("selected should be bold on the surface color")
	}
}

func TestGetPalette(t *testing.T) {
	if got := GetPalette("solarized"); *got != *DefaultPalette() {
		t.Errorf("unknown theme = %+v, want the default palette", got)
	}
	p := GetPalette(ThemeMonokai)
	p.Primary = "#000000"
	if GetPalette(ThemeMonokai).Primary == "#000000" {
		t.Error("GetPalette should return a copy")
	}
	for _, name := range BuiltinThemes() {
		if _, ok := builtinPalettes[ThemeName(name)]; !ok {
			t.Errorf("built-in theme %q has no palette", name)
		}
	}
}
