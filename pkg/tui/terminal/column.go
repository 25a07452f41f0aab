// ABOUTME: columnTracker follows the output cursor column from the bytes written to a terminal.
// ABOUTME: CR resets to the left margin; LF keeps the column as in raw mode; escapes have no width.

package terminal

import (
	"strings"

	"github.com/mauromedda/gridwalk/pkg/tui/width"
)

// columnTracker assumes escape sequences are never split across writes.
type columnTracker struct {
	col int
}

func (c *columnTracker) advance(s string) {
	if i := strings.LastIndexByte(s, '\r'); i >= 0 {
		c.col = 0
		s = s[i+1:]
	}
	c.col += width.VisibleWidth(s)
}

func (c *columnTracker) column() int {
	return c.col
}
