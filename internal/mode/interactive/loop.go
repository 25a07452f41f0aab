// ABOUTME: Interactive session loop: dispatches key events by mode to the grid, command buffer, and renderer
// ABOUTME: Run pairs a KeyReader goroutine with the single loop goroutine that owns all session state

package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/gridwalk/internal/config"
	"github.com/mauromedda/gridwalk/internal/grid"
	"github.com/mauromedda/gridwalk/internal/keybindings"
	"github.com/mauromedda/gridwalk/internal/log"
	"github.com/mauromedda/gridwalk/internal/mode"
	"github.com/mauromedda/gridwalk/internal/render"
	"github.com/mauromedda/gridwalk/pkg/tui/input"
	"github.com/mauromedda/gridwalk/pkg/tui/key"
	"github.com/mauromedda/gridwalk/pkg/tui/terminal"
)

// Lines printed around the session and for the write stub.
const (
	Greeting = "Welcome"
	Farewell = "Bye"
	SaveAck  = "New save written"
)

var moves = map[config.KeyAction]grid.Direction{
	config.ActionMoveLeft:  grid.Left,
	config.ActionMoveDown:  grid.Down,
	config.ActionMoveUp:    grid.Up,
	config.ActionMoveRight: grid.Right,
}

// Deps bundles everything a Loop needs.
type Deps struct {
	Terminal terminal.Terminal
	Input    io.Reader
	Renderer *render.Renderer
	Grid     *grid.Grid
	Keys     *keybindings.Manager
}

// Loop is one interactive session. Its state is only touched from the
// goroutine calling Step (or Run's loop goroutine).
type Loop struct {
	term   terminal.Terminal
	input  io.Reader
	render *render.Renderer
	grid   *grid.Grid
	modes  *mode.Controller
	keys   *keybindings.Manager
}

// New creates a Loop in Key mode. A nil Keys uses the default bindings.
func New(deps Deps) *Loop {
	keys := deps.Keys
	if keys == nil {
		keys = keybindings.NewFromBindings(config.NewKeybindings())
	}
	return &Loop{
		term:   deps.Terminal,
		input:  deps.Input,
		render: deps.Renderer,
		grid:   deps.Grid,
		modes:  mode.NewController(),
		keys:   keys,
	}
}

// Mode returns the active mode.
func (l *Loop) Mode() mode.Mode {
	return l.modes.Current()
}

// Position returns the cursor position.
func (l *Loop) Position() grid.Position {
	return l.grid.Position()
}

// Run draws the greeting and grid, then processes keys from the input
// until a quit key, end of input, or ctx cancellation, and prints the
// farewell. The caller owns raw mode.
func (l *Loop) Run(ctx context.Context) error {
	reader := input.NewKeyReader(l.input)

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer terminal.RecoverGoroutine(l.term)
		return reader.Run(loopCtx)
	})
	g.Go(func() (err error) {
		// Ending the loop stops the reader.
		defer stop()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("session panic: %v\n%s", r, debug.Stack())
			}
		}()
		return l.serve(loopCtx, reader)
	})

	return g.Wait()
}

func (l *Loop) serve(ctx context.Context, reader *input.KeyReader) error {
	if err := l.Start(); err != nil {
		return err
	}

	for {
		if err := l.Prompt(); err != nil {
			return err
		}

		k, err := reader.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("input closed")
			} else if ctx.Err() == nil {
				return err
			}
			break
		}

		done, err := l.Step(k)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	return l.Finish()
}

// Start prints the greeting and the initial grid.
func (l *Loop) Start() error {
	if err := l.render.Notice(Greeting); err != nil {
		return err
	}
	if err := l.render.DrawGrid(l.grid); err != nil {
		return err
	}
	return l.render.Flush()
}

// Prompt repaints the input line for the current mode and flushes.
func (l *Loop) Prompt() error {
	if err := l.render.ClearLine(); err != nil {
		return err
	}
	if err := l.render.DrawInputLine(l.modes.Current()); err != nil {
		return err
	}
	return l.render.Flush()
}

// Finish clears the input line and prints the farewell.
func (l *Loop) Finish() error {
	if err := l.render.ClearLine(); err != nil {
		return err
	}
	if err := l.render.Notice(Farewell); err != nil {
		return err
	}
	return l.render.Flush()
}

// Step applies one key event. It reports done when the session should end.
func (l *Loop) Step(k key.Key) (done bool, err error) {
	if k.Type == key.KeyNull {
		return false, nil
	}

	action := l.keys.ActionForKey(k)
	log.Debug("key %s action %q mode %s", k, action, l.modes.Current().Name())

	if action == config.ActionForceQuit {
		return true, nil
	}

	switch m := l.modes.Current().(type) {
	case mode.Cmd:
		return false, l.stepCmd(m, k, action)
	default:
		return l.stepKey(action)
	}
}

func (l *Loop) stepKey(action config.KeyAction) (bool, error) {
	if dir, ok := moves[action]; ok {
		l.grid.Move(dir)
		return false, l.render.DrawGrid(l.grid)
	}

	switch action {
	case config.ActionQuit:
		return true, nil
	case config.ActionIdle:
		return false, l.render.DrawGrid(l.grid)
	case config.ActionWrite:
		return false, l.render.Notice(SaveAck)
	case config.ActionToggleMode:
		l.modes.Toggle()
		return false, l.render.ClearLine()
	}
	return false, nil
}

func (l *Loop) stepCmd(m mode.Cmd, k key.Key, action config.KeyAction) error {
	switch action {
	case config.ActionToggleMode:
		l.modes.Toggle()
		return l.render.ClearLine()
	case config.ActionSubmit:
		if err := l.render.ClearLine(); err != nil {
			return err
		}
		if err := l.render.Echo(m.Buffer.Contents()); err != nil {
			return err
		}
		m.Buffer.Clear()
		return nil
	case config.ActionDeleteBack:
		m.Buffer.DeleteLast()
		return nil
	}

	if k.IsPrintable() {
		m.Buffer.Insert(k.Rune)
	}
	return nil
}
