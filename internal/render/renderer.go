// ABOUTME: Renderer draws the bordered grid, the mode-tagged input line, and echo/notice lines
// ABOUTME: Every draw is a full repaint written through the Terminal; callers decide when to flush

package render

import (
	"fmt"
	"strings"

	"github.com/mauromedda/gridwalk/internal/cmdline"
	"github.com/mauromedda/gridwalk/internal/grid"
	"github.com/mauromedda/gridwalk/internal/mode"
	"github.com/mauromedda/gridwalk/pkg/tui/terminal"
	"github.com/mauromedda/gridwalk/pkg/tui/width"
)

const (
	cursorMark = "@"
	divider    = "| "
	// Raw mode disables output post-processing, so every line ends in CR LF.
	newline = "\r\n"
)

// Renderer writes frames to a Terminal.
type Renderer struct {
	term        terminal.Terminal
	styles      Styles
	placeholder string
}

// New creates a Renderer. placeholder is the hint shown on an empty command line.
func New(t terminal.Terminal, styles Styles, placeholder string) *Renderer {
	return &Renderer{term: t, styles: styles, placeholder: placeholder}
}

// DrawGrid paints the bordered grid with the cursor marker at g's position.
func (r *Renderer) DrawGrid(g *grid.Grid) error {
	d := g.Dimensions()
	pos := g.Position()
	border := "+" + strings.Repeat("-", d.Cols) + "+" + newline

	var b strings.Builder
	b.Grow((d.Cols + 4) * (d.Rows + 2))
	b.WriteString("\r")
	b.WriteString(border)
	for row := range d.Rows {
		b.WriteString("|")
		if row == pos.Row {
			b.WriteString(strings.Repeat(" ", pos.Col))
			b.WriteString(cursorMark)
			b.WriteString(strings.Repeat(" ", d.Cols-pos.Col-1))
		} else {
			b.WriteString(strings.Repeat(" ", d.Cols))
		}
		b.WriteString("|" + newline)
	}
	b.WriteString(border)
	return r.write(b.String())
}

// ClearLine blanks the current line across the terminal width.
func (r *Renderer) ClearLine() error {
	return r.write("\r" + strings.Repeat(" ", terminal.Width(r.term)) + "\r")
}

// DrawInputLine writes the mode tag and, in Cmd mode, the command buffer
// or the placeholder hint. Call ClearLine first.
func (r *Renderer) DrawInputLine(m mode.Mode) error {
	tag := m.Name()
	if err := r.write("\r" + tag); err != nil {
		return err
	}

	cmd, ok := m.(mode.Cmd)
	if !ok {
		return nil
	}
	if cmd.Buffer == nil || cmd.Buffer.Len() == 0 {
		hint := r.styles.Placeholder.Render(r.placeholder)
		return r.write("  " + hint + " \r" + tag + "|")
	}

	if err := r.write(divider); err != nil {
		return err
	}
	return r.write(r.visibleTail(cmd.Buffer))
}

// visibleTail clips the buffer from the left so it fits between the current
// output column and the right edge. If the column is unknown the buffer is
// shown whole.
func (r *Renderer) visibleTail(buf *cmdline.Buffer) string {
	contents := buf.Contents()
	col, err := r.term.CursorColumn()
	if err != nil {
		return contents
	}
	return clip(contents, terminal.Width(r.term), col)
}

// clip keeps the suffix of s that fits in termWidth-col columns.
func clip(s string, termWidth, col int) string {
	return width.TailByColumns(s, termWidth-col)
}

// Echo prints a submitted command on its own line.
func (r *Renderer) Echo(command string) error {
	return r.write("\r[CMD]: " + command + newline)
}

// Notice prints a one-line message such as an acknowledgement or greeting.
func (r *Renderer) Notice(msg string) error {
	return r.write("\r" + msg + newline)
}

// Flush pushes buffered output to the terminal.
func (r *Renderer) Flush() error {
	if err := r.term.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func (r *Renderer) write(s string) error {
	if _, err := r.term.Write([]byte(s)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
