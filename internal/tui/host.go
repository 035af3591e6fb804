// Package tui runs an application in the terminal.
//
// The Host is both the application's event loop and its paint clock.
// Kernel tasks are queued and drained inside the bubbletea update
// goroutine, so the kernel, the memdom document and the renderer all run
// on one goroutine; bubbletea repaints the mount node after every update.
package tui

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/reactor/internal/app"
	"github.com/Iron-Ham/reactor/internal/errors"
	"github.com/Iron-Ham/reactor/internal/host"
	"github.com/Iron-Ham/reactor/internal/host/memdom"
	"github.com/Iron-Ham/reactor/internal/logging"
	"github.com/Iron-Ham/reactor/internal/tui/styles"
)

// Options configures a Host.
type Options struct {
	// AltScreen runs the program in the alternate screen buffer
	AltScreen bool
	// Theme styles rendered classes. Nil means the default theme.
	Theme *styles.Theme
	// Keys are the host bindings. The zero value means DefaultKeyMap.
	Keys   *KeyMap
	Logger *logging.Logger
	// Input and Output default to the process terminal
	Input  io.Reader
	Output io.Writer
}

// Host is an app.Loop backed by a bubbletea program.
type Host struct {
	q       *app.Queue
	doc     *memdom.Document
	body    *memdom.Node
	mount   *memdom.Node
	opts    Options
	keys    KeyMap
	logger  *logging.Logger
	program atomic.Pointer[tea.Program]
	waking  atomic.Bool
	quit    atomic.Bool

	width, height int
}

// wakeMsg tells the update goroutine that tasks are queued.
type wakeMsg struct{}

// NewHost creates a Host with an empty mount node attached to the
// document body.
func NewHost(opts Options) *Host {
	if opts.Theme == nil {
		opts.Theme = styles.DefaultTheme()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	doc := memdom.New()
	mount := doc.Element("main")
	h := &Host{
		doc:    doc,
		body:   doc.Element("body", mount),
		mount:  mount,
		opts:   opts,
		keys:   keys,
		logger: opts.Logger.WithComponent("tui"),
	}
	h.q = app.NewQueue(h.signal)
	return h
}

// Document returns the document the application renders into and
// subscribes to for key and resize events.
func (h *Host) Document() *memdom.Document { return h.doc }

// Mount returns the node the application should mount on. The host
// paints everything under the document body, so a view may replace it.
func (h *Host) Mount() *memdom.Node { return h.mount }

func (h *Host) Post(task func()) { h.q.Post(task) }

func (h *Host) RequestFrame(frame func()) { h.q.RequestFrame(frame) }

// Quit ends Run after the current update. It is safe to call from any
// goroutine.
func (h *Host) Quit() {
	h.quit.Store(true)
	h.signal()
}

// signal wakes the update goroutine. It never blocks: it may run on the
// update goroutine itself, where a blocking Send would deadlock.
func (h *Host) signal() {
	p := h.program.Load()
	if p == nil || !h.waking.CompareAndSwap(false, true) {
		return
	}
	go p.Send(wakeMsg{})
}

// Run runs the program until the user quits, Quit is called or ctx is
// done. It requires a terminal unless Input and Output are set.
func (h *Host) Run(ctx context.Context) error {
	var opts []tea.ProgramOption
	opts = append(opts, tea.WithContext(ctx))
	if h.opts.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if h.opts.Input != nil {
		opts = append(opts, tea.WithInput(h.opts.Input))
	}
	if h.opts.Output != nil {
		opts = append(opts, tea.WithOutput(h.opts.Output))
	}

	p := tea.NewProgram(&model{h: h}, opts...)
	if !h.program.CompareAndSwap(nil, p) {
		return errors.NewRuntimeError("host already running", nil).WithComponent("tui")
	}
	h.logger.Info("terminal host started", "alt_screen", h.opts.AltScreen)

	_, err := p.Run()
	switch {
	case ctx.Err() != nil:
		return nil
	case errors.Is(err, tea.ErrProgramKilled):
		return nil
	case err != nil:
		return errors.NewRuntimeError("terminal program failed", err).WithComponent("tui")
	}
	return nil
}

// model adapts the Host to bubbletea.
type model struct {
	h *Host
}

func (m *model) Init() tea.Cmd {
	return func() tea.Msg { return wakeMsg{} }
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	h := m.h
	switch msg := msg.(type) {
	case wakeMsg:
		h.waking.Store(false)

	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Quit) {
			return m, tea.Quit
		}
		name := KeyName(msg)
		h.doc.DispatchEvent(&host.Event{Type: "keydown", Key: name})
		h.doc.DispatchEvent(&host.Event{Type: "keyup", Key: name})

	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.doc.DispatchEvent(&host.Event{Type: "resize", Value: fmt.Sprintf("%dx%d", msg.Width, msg.Height)})
	}

	if frames := h.q.Drain(); frames > 0 {
		h.logger.Debug("frames rendered", "count", frames)
	}
	if h.quit.Load() {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	return Render(m.h.body, m.h.width, m.h.opts.Theme)
}
