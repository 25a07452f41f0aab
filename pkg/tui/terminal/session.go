// ABOUTME: WithRawMode scopes a raw-mode session around a function.
// ABOUTME: Raw mode is exited on every path out of fn: return, error, or panic.

package terminal

import "fmt"

// WithRawMode enters raw mode on t, runs fn, and always exits raw mode
// afterwards, flushing pending output first. An error from fn takes
// precedence over an error from restoring the terminal.
func WithRawMode(t Terminal, fn func() error) (err error) {
	if err := t.EnterRawMode(); err != nil {
		return err
	}
	defer func() {
		_ = t.Flush()
		if exitErr := t.ExitRawMode(); exitErr != nil && err == nil {
			err = fmt.Errorf("restoring terminal: %w", exitErr)
		}
	}()

	return fn()
}
