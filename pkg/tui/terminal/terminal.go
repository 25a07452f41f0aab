// ABOUTME: Defines the Terminal interface for raw mode, size and column queries, and buffered output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

// DefaultWidth is the column count assumed when the terminal cannot report one.
const DefaultWidth = 80

// Terminal abstracts low-level terminal operations: raw mode, size and
// cursor column queries, and output that is buffered until Flush.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	// CursorColumn reports the zero-based column the next write lands in.
	CursorColumn() (int, error)
	Write(p []byte) (n int, err error)
	Flush() error
}

// Width returns the terminal width, or DefaultWidth when the query fails
// or reports a non-positive value.
func Width(t Terminal) int {
	w, _, err := t.Size()
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
