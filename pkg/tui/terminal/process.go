// ABOUTME: ProcessTerminal implements Terminal over a tty pair using golang.org/x/term.
// ABOUTME: Manages raw mode state, buffers output until Flush, and tracks the cursor column.

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on a non-tty input.
var ErrNotTerminal = errors.New("input is not a terminal")

// ProcessTerminal is a real terminal backed by an input and an output file,
// normally os.Stdin and os.Stdout.
type ProcessTerminal struct {
	mu       sync.Mutex
	in       *os.File
	out      *os.File
	w        *bufio.Writer
	oldState *term.State
	cols     columnTracker
}

// NewProcessTerminal returns a ProcessTerminal on os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewProcessTerminalFrom(os.Stdin, os.Stdout)
}

// NewProcessTerminalFrom returns a ProcessTerminal reading raw-mode state
// from in and writing to out.
func NewProcessTerminalFrom(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{
		in:  in,
		out: out,
		w:   bufio.NewWriter(out),
	}
}

// EnterRawMode switches the input to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode: %w", ErrNotTerminal)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its previous state. Calling it
// without a preceding EnterRawMode is a no-op.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// IsRaw reports whether raw mode is active.
func (t *ProcessTerminal) IsRaw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.oldState != nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// CursorColumn returns the column tracked from everything written so far.
func (t *ProcessTerminal) CursorColumn() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.cols.column(), nil
}

// Write buffers p for the next Flush.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cols.advance(string(p))
	n, err := t.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// Flush sends buffered output to the terminal.
func (t *ProcessTerminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}
