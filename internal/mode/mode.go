// ABOUTME: Input modes as a tagged variant: Key (grid navigation) and Cmd (text entry with its buffer)
// ABOUTME: Controller toggles between them; entering Cmd always starts from an empty buffer

package mode

import "github.com/mauromedda/gridwalk/internal/cmdline"

// Mode is the active input mode. It is implemented only by Key and Cmd.
type Mode interface {
	// Name is the short tag shown at the start of the input line.
	Name() string
	isMode()
}

// Key is the default mode: keys move the cursor or trigger grid actions.
type Key struct{}

// Name implements Mode.
func (Key) Name() string { return "mov" }
func (Key) isMode()      {}

// Cmd accumulates typed characters into Buffer until they are submitted.
type Cmd struct {
	Buffer *cmdline.Buffer
}

// Name implements Mode.
func (Cmd) Name() string { return "cmd" }
func (Cmd) isMode()      {}

// Controller owns the current mode.
type Controller struct {
	current Mode
}

// NewController returns a Controller in Key mode.
func NewController() *Controller {
	return &Controller{current: Key{}}
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	return c.current
}

// Toggle switches Key to Cmd (with a fresh buffer) or Cmd to Key, and
// returns the new mode. Leaving Cmd discards its buffer.
func (c *Controller) Toggle() Mode {
	switch c.current.(type) {
	case Cmd:
		c.current = Key{}
	default:
		c.current = Cmd{Buffer: cmdline.New()}
	}
	return c.current
}
