package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/reactor/internal/app"
	"github.com/Iron-Ham/reactor/internal/demo"
	"github.com/Iron-Ham/reactor/internal/errors"
	"github.com/Iron-Ham/reactor/internal/event"
	"github.com/Iron-Ham/reactor/internal/host/memdom"
	"github.com/Iron-Ham/reactor/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the news reader",
	Long: `Run the news reader.

In a terminal the reader takes over the screen: j/k move, enter opens a
story, r toggles its read marker, x clears all markers and q quits.
When stdout is not a terminal, or with --headless, the reader runs without
input and prints every frame that differs from the previous one until it
is interrupted.`,
	RunE: runRun,
}

var runHeadless bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("stories", "", "stories JSON file, watched for changes")
	runCmd.Flags().String("feed", "", "shell command whose output lines become stories")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "print frames instead of running the terminal UI")
	_ = viper.BindPFlag("demo.stories_file", runCmd.Flags().Lookup("stories"))
	_ = viper.BindPFlag("demo.feed_command", runCmd.Flags().Lookup("feed"))
}

func runRun(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !runHeadless && term.IsTerminal(int(os.Stdout.Fd())) {
		return runTerminal(ctx, env)
	}
	return runHeadlessLoop(ctx, env, cmd.OutOrStdout())
}

func runTerminal(ctx context.Context, env *environment) error {
	h := tui.NewHost(tui.Options{
		AltScreen: env.cfg.TUI.AltScreen,
		Theme:     env.theme,
		Logger:    env.logger,
	})
	r := env.reader(h.Document(), h.Quit)

	a, err := app.Start(r.AppConfig(app.Config[*demo.State]{
		Node:       h.Mount(),
		Document:   h.Document(),
		Loop:       h,
		Logger:     env.logger,
		Middleware: []app.Middleware[*demo.State]{app.Logging[*demo.State](env.logger)},
	}))
	if err != nil {
		return err
	}
	// Run has returned by the time Stop runs, so nothing else is on the loop.
	defer a.Stop()

	return h.Run(ctx)
}

func runHeadlessLoop(ctx context.Context, env *environment, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	doc := memdom.New()
	mount := doc.Element("main")
	body := doc.Element("body", mount)

	var last string
	bus := event.NewBus(env.logger)
	bus.Subscribe(event.TypeRenderCompleted, func(event.Event) {
		frame := tui.Render(body, 0, env.theme)
		if frame == last {
			return
		}
		last = frame
		fmt.Fprintln(out, frame)
		fmt.Fprintln(out)
	})

	loop := app.NewEventLoop(env.cfg.Runtime.FrameInterval())
	r := env.reader(nil, cancel)
	a, err := app.Start(r.AppConfig(app.Config[*demo.State]{
		Node:       mount,
		Document:   doc,
		Loop:       loop,
		Logger:     env.logger,
		Bus:        bus,
		Middleware: []app.Middleware[*demo.State]{app.Logging[*demo.State](env.logger)},
	}))
	if err != nil {
		return err
	}

	err = loop.Run(ctx)
	a.Stop()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
