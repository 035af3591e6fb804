package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/host/memdom"
	"github.com/Iron-Ham/reactor/internal/tui/styles"
)

// blockTags start on their own line. Every other element is inline.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "body": true,
	"div": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"header": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "ul": true,
}

// Render draws the tree rooted at n as styled terminal text. Lines wider
// than width are truncated; width 0 disables truncation.
func Render(n *memdom.Node, width int, theme *styles.Theme) string {
	if n == nil {
		return ""
	}
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	out := render(n, theme)
	if width <= 0 {
		return out
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

func render(n *memdom.Node, theme *styles.Theme) string {
	if n.NodeType() == host.TextNode {
		return n.NodeValue()
	}
	if n.Property("hidden") == true {
		return ""
	}
	style := elementStyle(n, theme)
	if !isBlock(n) {
		var b strings.Builder
		for _, c := range n.Children() {
			b.WriteString(render(c, theme))
		}
		return style.Render(b.String())
	}
	return style.Render(renderBlock(n, theme))
}

// renderBlock lays out the children of a block: runs of inline children
// share a line and each block child starts a new one. Empty blocks take no
// space.
func renderBlock(n *memdom.Node, theme *styles.Theme) string {
	var (
		lines []string
		line  strings.Builder
		item  int
	)
	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}
	for _, c := range n.Children() {
		if !isBlock(c) {
			line.WriteString(render(c, theme))
			continue
		}
		flush()
		out := render(c, theme)
		if out == "" {
			continue
		}
		if c.NodeName() == "li" {
			item++
			if marker := listMarker(n.NodeName(), item); marker != "" {
				out = lipgloss.JoinHorizontal(lipgloss.Top, marker, out)
			}
		}
		lines = append(lines, out)
	}
	flush()
	return strings.Join(lines, "\n")
}

func listMarker(parent string, i int) string {
	switch parent {
	case "ul":
		return "• "
	case "ol":
		return fmt.Sprintf("%d. ", i)
	default:
		return ""
	}
}

func isBlock(n *memdom.Node) bool {
	return n.NodeType() == host.ElementNode && blockTags[n.NodeName()]
}

// elementStyle combines the theme styles of the element's classes, the
// tag's own emphasis and its inline style declarations, in that order.
func elementStyle(n *memdom.Node, theme *styles.Theme) lipgloss.Style {
	var classes []string
	if c, ok := n.Attribute("class"); ok {
		classes = strings.Fields(c)
	}
	s := theme.ClassStyle(classes)

	switch n.NodeName() {
	case "h1", "h2", "h3", "b", "strong":
		s = s.Bold(true)
	case "em", "i":
		s = s.Italic(true)
	case "u":
		s = s.Underline(true)
	case "s", "del":
		s = s.Strikethrough(true)
	}

	for k, v := range n.Style() {
		switch k {
		case "color":
			s = s.Foreground(lipgloss.Color(v))
		case "background", "background-color":
			s = s.Background(lipgloss.Color(v))
		case "font-weight":
			weight, err := strconv.Atoi(v)
			s = s.Bold(v == "bold" || v == "bolder" || (err == nil && weight >= 600))
		case "font-style":
			s = s.Italic(v == "italic")
		case "text-decoration":
			s = s.Underline(strings.Contains(v, "underline")).
				Strikethrough(strings.Contains(v, "line-through"))
		case "padding":
			if box := parseBox(v); box != nil {
				s = s.Padding(box...)
			}
		case "width":
			if w, err := strconv.Atoi(strings.TrimSuffix(v, "ch")); err == nil {
				s = s.Width(w)
			}
		}
	}
	return s
}

// parseBox reads one to four cell counts such as "0 1". Units are ignored.
func parseBox(v string) []int {
	fields := strings.Fields(v)
	if len(fields) == 0 || len(fields) > 4 {
		return nil
	}
	box := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimRight(f, "chpx"))
		if err != nil {
			return nil
		}
		box[i] = n
	}
	return box
}
