package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/reactor/internal/vnode"
)

func TestFuzzyTime(t *testing.T) {
	epoch := time.Unix(0, 0)
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"same instant", epoch, "Just now"},
		{"seconds", epoch.Add(59 * time.Second), "Just now"},
		{"future", epoch.Add(-time.Hour), "Just now"},
		{"one minute", epoch.Add(time.Minute), "1 minute(s) ago"},
		{"hours round down", epoch.Add(3*time.Hour + 59*time.Minute), "3 hour(s) ago"},
		{"one day", epoch.Add(24 * time.Hour), "1 day(s) ago"},
		{"months", epoch.Add(65 * 24 * time.Hour), "2 month(s) ago"},
		{"years", epoch.Add(800 * 24 * time.Hour), "2 year(s) ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FuzzyTime(0, tt.now); got != tt.want {
				t.Errorf("FuzzyTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFuzzyTimeNode(t *testing.T) {
	n := FuzzyTimeNode(0, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC))

	if n.Tag != "span" {
		t.Errorf("Tag = %q, want span", n.Tag)
	}
	if got := n.Props["title"]; got != "1970-01-01T00:00:00Z" {
		t.Errorf("title = %v, want 1970-01-01T00:00:00Z", got)
	}
	if len(n.Children) != 1 || n.Children[0].Text != "1 day(s) ago" {
		t.Errorf("children = %+v, want one text node", n.Children)
	}
}

func text(n *vnode.Node) string {
	if n.Kind == vnode.KindText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(text(c))
	}
	return b.String()
}

func TestStoryRow(t *testing.T) {
	st := Story{ID: "1", Title: "Hello", By: "pat", Score: 7, Descendants: 2}
	row := StoryRow(vnode.Props{"story": st, "selected": true, "read": false, "age": "Just now"})

	if row.Tag != "li" {
		t.Fatalf("Tag = %q, want li", row.Tag)
	}
	class := row.Props["class"].(map[string]bool)
	if !class["selected"] || !class["unread"] || class["read"] {
		t.Errorf("class = %v", class)
	}
	if got, want := text(row), "   7 Hello · 2 replies · Just now by pat"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}

	shadow := StoryRow(vnode.Props{"story": Story{ID: "2"}, "selected": false, "read": false, "age": ""})
	if got := text(shadow); got != "…" {
		t.Errorf("placeholder text = %q", got)
	}
}

func TestView_Loading(t *testing.T) {
	r := New(Options{})
	v := r.View(&State{Now: time.Unix(0, 0)})

	if !strings.Contains(text(v), "Loading…") {
		t.Errorf("view = %q, want a loading message", text(v))
	}
}

func TestView_Detail(t *testing.T) {
	r := New(Options{})
	s := &State{
		Loaded: true,
		Now:    time.Unix(3600, 0),
		Stories: []Story{
			{ID: "1", Title: "Ask", By: "sam", Text: "first<p>second", Score: 3},
		},
		Open:   "1",
		Status: "boom",
	}
	v := r.View(s)

	var tags []string
	for _, c := range v.Children {
		tags = append(tags, c.Tag)
	}
	if got := strings.Join(tags, ","); got != "header,p,ol,section,footer" {
		t.Errorf("sections = %s", got)
	}
	if got := text(v.Children[0]); !strings.HasPrefix(got, "Hyper News") || len(v.Children[0].Children) != 2 {
		t.Errorf("header = %q", got)
	}
	section := v.Children[3]
	got := text(section)
	for _, want := range []string{"Ask", "/story/1", "3 points by sam 1 hour(s) ago", "first", "second"} {
		if !strings.Contains(got, want) {
			t.Errorf("detail %q does not contain %q", got, want)
		}
	}
}
