// Package demo is a small news reader built on the kernel.
//
// It exercises every part of the runtime: a keyed list of lazily rendered
// story rows, a clock subscription driving relative timestamps, key
// subscriptions, a watched stories file, an optional command feed and
// read markers persisted through the storage effects.
package demo

import (
	"slices"
	"time"
)

// StateKey is the storage key the reader persists under.
const StateKey = "reader"

// Story is one news item.
type Story struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	By          string `json:"by"`
	URL         string `json:"url,omitempty"`
	Text        string `json:"text,omitempty"`
	Time        int64  `json:"time"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
}

// State is the reader state. Transitions never mutate a State; they return
// a new one, or the same pointer when nothing changed.
type State struct {
	Stories  []Story
	Selected int
	// Read holds the IDs of read stories. It is replaced, never modified.
	Read   map[string]bool
	Open   string
	Now    time.Time
	Status string
	Loaded bool
	// fed counts feed lines, for unique story IDs.
	fed int
}

// Persisted is the part of State that survives restarts.
type Persisted struct {
	Read     []string `json:"read"`
	Selected int      `json:"selected"`
}

func (s *State) clone() *State {
	c := *s
	return &c
}

func (s *State) persisted() Persisted {
	read := make([]string, 0, len(s.Read))
	for id, ok := range s.Read {
		if ok {
			read = append(read, id)
		}
	}
	slices.Sort(read)
	return Persisted{Read: read, Selected: s.Selected}
}

// Current returns the selected story.
func (s *State) Current() (Story, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Stories) {
		return Story{}, false
	}
	return s.Stories[s.Selected], true
}

// OpenStory returns the story shown in the detail pane.
func (s *State) OpenStory() (Story, bool) {
	if s.Open == "" {
		return Story{}, false
	}
	i := slices.IndexFunc(s.Stories, func(st Story) bool { return st.ID == s.Open })
	if i < 0 {
		return Story{}, false
	}
	return s.Stories[i], true
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	return min(i, n-1)
}
