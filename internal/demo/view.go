package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// Help is the key summary shown in the footer.
const Help = "j/k move · enter open · r read · x clear · q quit"

var increments = []struct {
	word string
	d    time.Duration
}{
	{"year(s)", 365 * 24 * time.Hour},
	{"month(s)", 30 * 24 * time.Hour},
	{"day(s)", 24 * time.Hour},
	{"hour(s)", time.Hour},
	{"minute(s)", time.Minute},
}

// FuzzyTime describes how long before now the unix time t was, in the
// largest whole unit: "3 hour(s) ago". Anything under a minute, including
// times in the future, is "Just now".
func FuzzyTime(t int64, now time.Time) string {
	diff := now.Sub(time.Unix(t, 0))
	for _, inc := range increments {
		if diff >= inc.d {
			return fmt.Sprintf("%d %s ago", diff/inc.d, inc.word)
		}
	}
	return "Just now"
}

// FuzzyTimeNode renders FuzzyTime in a span titled with the exact time.
func FuzzyTimeNode(t int64, now time.Time) *vnode.Node {
	return vnode.H("span", vnode.Props{
		"class": "muted",
		"title": time.Unix(t, 0).UTC().Format(time.RFC3339),
	}, FuzzyTime(t, now))
}

// Header renders props["title"] above its children.
func Header(p vnode.Props, children []*vnode.Node) *vnode.Node {
	return vnode.H("header", nil, vnode.H("h1", vnode.Props{"class": "title"}, p["title"]), children)
}

// View renders the reader.
func (r *Reader) View(s *State) *vnode.Node {
	return vnode.H("main", vnode.Props{"class": "reader"},
		vnode.C(Header, vnode.Props{"title": "Hyper News"},
			vnode.H("p", vnode.Props{"class": "subtitle"}, s.Now.Format("Mon Jan 2 15:04:05")),
		),
		action.When(s.Status != "", vnode.H("p", vnode.Props{"class": "error"}, s.Status)),
		stories(s),
		detail(s),
		vnode.H("footer", vnode.Props{"class": "muted"}, Help),
	)
}

func stories(s *State) *vnode.Node {
	if !s.Loaded {
		return vnode.H("p", vnode.Props{"class": "muted"}, "Loading…")
	}
	if len(s.Stories) == 0 {
		return vnode.H("p", vnode.Props{"class": "muted"}, "No stories")
	}
	rows := make([]*vnode.Node, len(s.Stories))
	for i, st := range s.Stories {
		rows[i] = vnode.Lazy(storyRow, vnode.Props{
			"key":      st.ID,
			"story":    st,
			"selected": i == s.Selected,
			"read":     s.Read[st.ID],
			"age":      FuzzyTime(st.Time, s.Now),
		})
	}
	return vnode.H("ol", vnode.Props{"class": "stories"}, rows)
}

var storyRow = vnode.NewView("StoryRow", StoryRow)

// StoryRow renders one list entry. It only depends on its props so the
// list can render rows lazily.
func StoryRow(p vnode.Props) *vnode.Node {
	st := p["story"].(Story)
	read := p["read"].(bool)
	class := map[string]bool{
		"selected": p["selected"].(bool),
		"read":     read,
		"unread":   !read,
	}
	if st.Title == "" {
		return vnode.H("li", vnode.Props{"class": class}, vnode.H("span", vnode.Props{"class": "muted"}, "…"))
	}
	return vnode.H("li", vnode.Props{"class": class},
		vnode.H("span", vnode.Props{"class": "accent"}, fmt.Sprintf("%4d ", st.Score)),
		st.Title,
		vnode.H("span", vnode.Props{"class": "muted"}, fmt.Sprintf(" · %d replies · %s by %s", st.Descendants, p["age"], st.By)),
	)
}

func detail(s *State) *vnode.Node {
	st, ok := s.OpenStory()
	if !ok {
		return nil
	}
	url := st.URL
	if url == "" {
		url = "/story/" + st.ID
	}
	var paragraphs []*vnode.Node
	for text := range strings.SplitSeq(st.Text, "<p>") {
		if text = strings.TrimSpace(text); text != "" {
			paragraphs = append(paragraphs, vnode.H("p", nil, text))
		}
	}
	return vnode.H("section", vnode.Props{"class": "detail"},
		vnode.H("h2", nil, st.Title),
		vnode.H("p", vnode.Props{"class": "muted"}, url),
		vnode.H("p", nil,
			fmt.Sprintf("%d points by %s ", st.Score, st.By),
			FuzzyTimeNode(st.Time, s.Now),
		),
		paragraphs,
	)
}
