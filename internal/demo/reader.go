package demo

import (
	"embed"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/app"
	"github.com/Iron-Ham/reactor/internal/errors"
	"github.com/Iron-Ham/reactor/internal/fx"
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/logging"
	"github.com/Iron-Ham/reactor/internal/storage"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

//go:embed stories.json
var builtin embed.FS

const builtinStories = "stories.json"

// feedPrefix marks stories that came from the feed command.
const feedPrefix = "feed-"

// Options configures a Reader.
type Options struct {
	// Store persists read markers. Nil disables persistence.
	Store storage.Store
	// Fs reads StoriesFile. Nil means the OS filesystem.
	Fs afero.Fs
	// StoriesFile is a JSON array of stories, watched for changes. Empty
	// uses the built-in stories.
	StoriesFile string
	// ClockInterval is the clock tick. Zero means one second.
	ClockInterval time.Duration
	// FeedCommand is run with sh -c; each output line becomes a story.
	FeedCommand string
	// Events receives keydown events. Nil disables the key bindings.
	Events host.EventTarget
	// Quit is called by the q binding. Nil disables it.
	Quit func()
	// Now is the clock used for new feed stories. Nil means time.Now.
	Now    func() time.Time
	Logger *logging.Logger
}

// Reader is the news reader application. Its transitions are created once
// per Reader so subscriptions bound to them survive frames.
type Reader struct {
	opts        Options
	fs          afero.Fs
	storiesPath string
	logger      *logging.Logger

	Init           *action.Transition[*State]
	Restore        *action.Transition[*State]
	RestoreFailed  *action.Transition[*State]
	StoriesLoaded  *action.Transition[*State]
	StoriesChanged *action.Transition[*State]
	LoadFailed     *action.Transition[*State]
	StoreFailed    *action.Transition[*State]
	Tick           *action.Transition[*State]
	Move           *action.Transition[*State]
	ToggleOpen     *action.Transition[*State]
	ToggleRead     *action.Transition[*State]
	ClearRead      *action.Transition[*State]
	FeedLine       *action.Transition[*State]
	FeedExit       *action.Transition[*State]
	Quit           *action.Transition[*State]
}

// New creates a Reader.
func New(opts Options) *Reader {
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}

	r := &Reader{opts: opts, logger: opts.Logger.WithComponent("demo")}
	if opts.StoriesFile == "" {
		r.fs = afero.FromIOFS{FS: builtin}
		r.storiesPath = builtinStories
	} else {
		r.fs = opts.Fs
		if r.fs == nil {
			r.fs = afero.NewOsFs()
		}
		r.storiesPath = opts.StoriesFile
	}

	r.Init = action.NewTransition("Init", r.init)
	r.Restore = action.NewTransition("Restore", r.restore)
	r.RestoreFailed = action.NewTransition("RestoreFailed", r.restoreFailed)
	r.StoriesLoaded = action.NewTransition("StoriesLoaded", r.storiesLoaded)
	r.StoriesChanged = action.NewTransition("StoriesChanged", r.storiesChanged)
	r.LoadFailed = action.NewTransition("LoadFailed", failed("cannot load stories"))
	r.StoreFailed = action.NewTransition("StoreFailed", failed("cannot save read markers"))
	r.Tick = action.NewTransition("Tick", tick)
	r.Move = action.NewTransition("Move", move)
	r.ToggleOpen = action.NewTransition("ToggleOpen", r.toggleOpen)
	r.ToggleRead = action.NewTransition("ToggleRead", r.toggleRead)
	r.ClearRead = action.NewTransition("ClearRead", r.clearRead)
	r.FeedLine = action.NewTransition("FeedLine", r.feedLine)
	r.FeedExit = action.NewTransition("FeedExit", r.feedExit)
	r.Quit = action.NewTransition("Quit", r.quit)
	return r
}

// AppConfig fills in the application parts of base.
func (r *Reader) AppConfig(base app.Config[*State]) app.Config[*State] {
	base.Name = "reader"
	base.Init = r.Init
	base.View = r.View
	base.Subscriptions = r.Subscriptions
	return base
}

func (r *Reader) init(_ *State, _ any) action.Action[*State] {
	s := &State{Read: map[string]bool{}, Now: r.opts.Now()}
	return action.WithEffects(s,
		action.When(r.opts.Store != nil, fx.RetrieveState[*State, Persisted](r.opts.Store, StateKey, r.Restore, r.RestoreFailed)),
		r.load(r.storiesPath),
	)
}

func (r *Reader) load(path string) action.Effect[*State] {
	return fx.ReadJSON[*State, []Story](r.fs, path, r.StoriesLoaded, r.LoadFailed)
}

func (r *Reader) save(s *State) any {
	if r.opts.Store == nil {
		return nil
	}
	return fx.StoreState[*State](r.opts.Store, StateKey, s.persisted(), r.StoreFailed)
}

func (r *Reader) restore(s *State, payload any) action.Action[*State] {
	p := payload.(Persisted)
	next := s.clone()
	next.Read = make(map[string]bool, len(p.Read))
	for _, id := range p.Read {
		next.Read[id] = true
	}
	next.Selected = p.Selected
	if next.Loaded {
		next.Selected = clamp(p.Selected, len(next.Stories))
	}
	return action.Set(next)
}

func (r *Reader) restoreFailed(s *State, payload any) action.Action[*State] {
	err := payload.(error)
	if errors.Is(err, storage.ErrNotFound) {
		return action.Set(s)
	}
	r.logger.Warn("cannot restore read markers", "error", err)
	next := s.clone()
	next.Status = fmt.Sprintf("cannot restore read markers: %v", err)
	return action.Set(next)
}

// storiesLoaded replaces the file stories, keeping feed stories on top and
// the selection on the same story when it is still present.
func (r *Reader) storiesLoaded(s *State, payload any) action.Action[*State] {
	loaded := payload.([]Story)
	next := s.clone()

	stories := slices.DeleteFunc(slices.Clone(s.Stories), func(st Story) bool {
		return !strings.HasPrefix(st.ID, feedPrefix)
	})
	next.Stories = append(stories, loaded...)

	next.Selected = clamp(s.Selected, len(next.Stories))
	if cur, ok := s.Current(); ok && s.Loaded {
		if i := slices.IndexFunc(next.Stories, func(st Story) bool { return st.ID == cur.ID }); i >= 0 {
			next.Selected = i
		}
	}
	if _, ok := next.OpenStory(); !ok {
		next.Open = ""
	}
	next.Loaded = true
	next.Status = ""
	r.logger.Debug("stories loaded", "count", len(loaded))
	return action.Set(next)
}

func (r *Reader) storiesChanged(s *State, payload any) action.Action[*State] {
	return action.WithEffects(s, r.load(payload.(string)))
}

func failed(what string) action.TransitionFunc[*State] {
	return func(s *State, payload any) action.Action[*State] {
		next := s.clone()
		next.Status = fmt.Sprintf("%s: %v", what, payload)
		return action.Set(next)
	}
}

func tick(s *State, payload any) action.Action[*State] {
	next := s.clone()
	next.Now = payload.(time.Time)
	return action.Set(next)
}

func move(s *State, payload any) action.Action[*State] {
	i := clamp(s.Selected+payload.(int), len(s.Stories))
	if i == s.Selected {
		return action.Set(s)
	}
	next := s.clone()
	next.Selected = i
	return action.Set(next)
}

func (r *Reader) toggleOpen(s *State, _ any) action.Action[*State] {
	cur, ok := s.Current()
	if !ok {
		return action.Set(s)
	}
	next := s.clone()
	if s.Open == cur.ID {
		next.Open = ""
		return action.Set(next)
	}
	next.Open = cur.ID
	if s.Read[cur.ID] {
		return action.Set(next)
	}
	next.Read = withRead(s.Read, cur.ID, true)
	return action.WithEffects(next, r.save(next))
}

func (r *Reader) toggleRead(s *State, _ any) action.Action[*State] {
	cur, ok := s.Current()
	if !ok {
		return action.Set(s)
	}
	next := s.clone()
	next.Read = withRead(s.Read, cur.ID, !s.Read[cur.ID])
	return action.WithEffects(next, r.save(next))
}

func (r *Reader) clearRead(s *State, _ any) action.Action[*State] {
	if len(s.Read) == 0 {
		return action.Set(s)
	}
	next := s.clone()
	next.Read = map[string]bool{}
	return action.WithEffects(next,
		action.When(r.opts.Store != nil, fx.ClearState[*State](r.opts.Store, StateKey, r.StoreFailed)),
	)
}

func withRead(read map[string]bool, id string, on bool) map[string]bool {
	out := make(map[string]bool, len(read)+1)
	for k, v := range read {
		if v && k != id {
			out[k] = true
		}
	}
	if on {
		out[id] = true
	}
	return out
}

func (r *Reader) feedLine(s *State, payload any) action.Action[*State] {
	line := strings.TrimSpace(payload.(string))
	if line == "" {
		return action.Set(s)
	}
	next := s.clone()
	next.fed++
	st := Story{
		ID:    fmt.Sprintf("%s%d", feedPrefix, next.fed),
		Title: line,
		By:    "feed",
		Time:  r.opts.Now().Unix(),
	}
	next.Stories = append([]Story{st}, s.Stories...)
	if len(s.Stories) > 0 {
		next.Selected = s.Selected + 1
	}
	return action.Set(next)
}

func (r *Reader) feedExit(s *State, payload any) action.Action[*State] {
	next := s.clone()
	if err, _ := payload.(error); err != nil {
		next.Status = fmt.Sprintf("feed failed: %v", err)
	} else {
		next.Status = "feed finished"
	}
	return action.WithEffects(next, fx.Log[*State](r.logger, "feed command exited", "command", r.opts.FeedCommand))
}

func (r *Reader) quit(s *State, _ any) action.Action[*State] {
	return action.WithEffects(s, action.Effect[*State]{Run: r.runQuit})
}

func (r *Reader) runQuit(action.Dispatch[*State], vnode.Props, any) {
	r.opts.Quit()
}

// Subscriptions declares the clock, the key bindings and the live sources.
func (r *Reader) Subscriptions(s *State) []any {
	events := r.opts.Events
	var keys []any
	if events != nil {
		keys = []any{
			fx.KeyDown[*State](events, action.With(r.Move, 1), "j", "down"),
			fx.KeyDown[*State](events, action.With(r.Move, -1), "k", "up"),
			fx.KeyDown[*State](events, r.ToggleOpen, "enter"),
			fx.KeyDown[*State](events, r.ToggleRead, "r"),
			fx.KeyDown[*State](events, r.ClearRead, "x"),
			action.When(r.opts.Quit != nil, fx.KeyDown[*State](events, r.Quit, "q")),
		}
	}

	var watch any
	if r.opts.StoriesFile != "" && s.Loaded {
		dir, base := filepath.Split(r.storiesPath)
		if dir == "" {
			dir = "."
		}
		watch = fx.WatchFile[*State](dir, glob.QuoteMeta(base), r.StoriesChanged, r.LoadFailed)
	}

	var feed any
	if r.opts.FeedCommand != "" {
		feed = fx.Exec[*State]("sh", []string{"-c", r.opts.FeedCommand}, r.FeedLine, r.FeedExit)
	}

	return []any{
		fx.Every[*State](r.opts.ClockInterval, r.Tick),
		keys,
		watch,
		feed,
	}
}
