package memdom

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/reactor/internal/host"
)

// Outer renders n and its subtree as HTML-like markup. Attributes,
// properties and style declarations are written in sorted order.
func Outer(n host.Node) string {
	var b strings.Builder
	writeOuter(&b, n)
	return b.String()
}

func writeOuter(b *strings.Builder, hn host.Node) {
	n, ok := hn.(*Node)
	if !ok {
		return
	}
	if n.typ == host.TextNode {
		b.WriteString(html.EscapeString(n.value))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.name)
	for _, k := range slices.Sorted(maps.Keys(n.attrs)) {
		fmt.Fprintf(b, " %s=%q", k, html.EscapeString(n.attrs[k]))
	}
	for _, k := range slices.Sorted(maps.Keys(n.props)) {
		fmt.Fprintf(b, " %s=%q", k, html.EscapeString(fmt.Sprint(n.props[k])))
	}
	if len(n.style) > 0 {
		fmt.Fprintf(b, " style=%q", html.EscapeString(StyleText(n.style)))
	}
	b.WriteByte('>')
	for _, c := range n.children {
		writeOuter(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.name)
	b.WriteByte('>')
}

// StyleText formats style declarations as "k: v; k: v" in sorted order.
func StyleText(style map[string]string) string {
	parts := make([]string, 0, len(style))
	for _, k := range slices.Sorted(maps.Keys(style)) {
		parts = append(parts, k+": "+style[k])
	}
	return strings.Join(parts, "; ")
}

// Snapshot is a serializable copy of a live subtree.
type Snapshot struct {
	Tag      string            `yaml:"tag,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Props    map[string]string `yaml:"props,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Children []*Snapshot       `yaml:"children,omitempty"`
}

// Snap copies the subtree rooted at n.
func Snap(hn host.Node) *Snapshot {
	n, ok := hn.(*Node)
	if !ok {
		return nil
	}
	if n.typ == host.TextNode {
		return &Snapshot{Text: n.value}
	}
	s := &Snapshot{
		Tag:   n.name,
		Attrs: maps.Clone(n.attrs),
		Style: maps.Clone(n.style),
	}
	if len(n.props) > 0 {
		s.Props = make(map[string]string, len(n.props))
		for k, v := range n.props {
			s.Props[k] = fmt.Sprint(v)
		}
	}
	for _, c := range n.children {
		s.Children = append(s.Children, Snap(c))
	}
	return s
}

// YAML encodes the snapshot.
func (s *Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
