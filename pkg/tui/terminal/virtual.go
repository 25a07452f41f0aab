// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output, tracks raw-mode transitions and flushes, and can inject query failures.

package terminal

import (
	"bytes"
	"fmt"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
// It records written output and tracks raw-mode transitions.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	width      int
	height     int
	rawMode    bool
	cols       columnTracker
	enterCount int
	exitCount  int
	flushCount int

	sizeErr   error
	columnErr error
	enterErr  error
	exitErr   error
	writeErr  error
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.enterErr != nil {
		return v.enterErr
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.exitCount++
	if v.exitErr != nil {
		return v.exitErr
	}
	v.rawMode = false
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sizeErr != nil {
		return 0, 0, v.sizeErr
	}
	return v.width, v.height, nil
}

// CursorColumn returns the column tracked from written output.
func (v *VirtualTerminal) CursorColumn() (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.columnErr != nil {
		return 0, v.columnErr
	}
	return v.cols.column(), nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.writeErr != nil {
		return 0, v.writeErr
	}
	v.cols.advance(string(p))
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// Flush records a flush; output is captured immediately.
func (v *VirtualTerminal) Flush() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.flushCount++
	return nil
}

// --- Test helpers (not part of Terminal interface) ---

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer and moves the tracked column to 0.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
	v.cols = columnTracker{}
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode succeeded.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// FlushCount returns how many times Flush was called.
func (v *VirtualTerminal) FlushCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.flushCount
}

// SetSize updates the terminal dimensions.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.height = height
}

// SetSizeError makes Size fail with err (nil clears it).
func (v *VirtualTerminal) SetSizeError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sizeErr = err
}

// SetColumnError makes CursorColumn fail with err (nil clears it).
func (v *VirtualTerminal) SetColumnError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.columnErr = err
}

// SetRawModeErrors makes EnterRawMode and ExitRawMode fail.
func (v *VirtualTerminal) SetRawModeErrors(enter, exit error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.enterErr = enter
	v.exitErr = exit
}

// SetWriteError makes Write fail with err (nil clears it).
func (v *VirtualTerminal) SetWriteError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeErr = err
}
