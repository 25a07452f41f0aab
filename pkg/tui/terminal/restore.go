// ABOUTME: Panic handlers that restore the terminal from raw mode before reporting the panic.
// ABOUTME: RestoreOnPanic exits the process; RecoverGoroutine lets the main goroutine shut down.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main (or any
// goroutine that owns the terminal). On panic it exits raw mode via the
// provided Terminal, prints the panic value and stack trace, then exits
// with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.Flush()
	_ = t.ExitRawMode()
	fmt.Fprintf(os.Stderr, "\r\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the terminal is in raw mode. Unlike RestoreOnPanic it
// does NOT call os.Exit, allowing the main goroutine to handle shutdown.
func RecoverGoroutine(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.ExitRawMode()
	fmt.Fprintf(os.Stderr, "\r\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}
