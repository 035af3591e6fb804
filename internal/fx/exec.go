package fx

import (
	"bufio"
	"context"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/reactor/internal/action"
	"github.com/Iron-Ham/reactor/internal/vnode"
)

// ExecWidth is the terminal width commands started by Exec see.
const ExecWidth = 200

// Exec runs a command under a pseudo-terminal and dispatches onLine with
// each line it prints, without the line ending. When the command exits on
// its own onExit is dispatched with the error from waiting on it, which is
// nil for a clean exit. Stopping the subscription kills the command.
func Exec[S any](name string, args []string, onLine, onExit action.Action[S]) action.Subscription[S] {
	return action.Subscription[S]{
		Source: action.SourceFor[S]("fx.Exec", startExec[S]),
		Props: vnode.Props{
			"name": name,
			"args": strings.Join(args, argSep),
			"line": onLine,
			"exit": onExit,
		},
	}
}

// argSep joins the argument list into one comparable prop.
const argSep = "\x00"

func startExec[S any](d action.Dispatch[S], props vnode.Props) action.StopFunc {
	var args []string
	if s := props["args"].(string); s != "" {
		args = strings.Split(s, argSep)
	}
	onLine := props["line"].(action.Action[S])
	onExit, _ := props["exit"].(action.Action[S])

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, props["name"].(string), args...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: ExecWidth})
	if err != nil {
		cancel()
		fail(d, onExit, err)
		return nil
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		scanner := bufio.NewScanner(ptmx)
		for scanner.Scan() {
			d(onLine, strings.TrimRight(scanner.Text(), "\r"))
		}
		// Reading the pty fails with EIO once the command has exited.
		err := cmd.Wait()
		if ctx.Err() == nil && onExit != nil {
			d(onExit, err)
		}
	})
	return func() {
		cancel()
		_ = ptmx.Close()
		wg.Wait()
	}
}
