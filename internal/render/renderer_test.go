// ABOUTME: Tests for grid, input line, echo, and notice rendering against a VirtualTerminal
// ABOUTME: Covers clipping, width fallback, column query failure, and write errors

package render

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mauromedda/gridwalk/internal/cmdline"
	"github.com/mauromedda/gridwalk/internal/grid"
	"github.com/mauromedda/gridwalk/internal/mode"
	"github.com/mauromedda/gridwalk/pkg/tui/terminal"
)

const hint = "Type your command here"

func newTestRenderer(t *testing.T, termWidth int) (*Renderer, *terminal.VirtualTerminal) {
	t.Helper()
	vt := terminal.NewVirtualTerminal(termWidth, 24)
	return New(vt, NewStyles(io.Discard), hint), vt
}

func cmdWith(s string) mode.Cmd {
	buf := cmdline.New()
	for _, r := range s {
		buf.Insert(r)
	}
	return mode.Cmd{Buffer: buf}
}

func TestDrawGrid(t *testing.T) {
	t.Parallel()

	d, err := grid.NewDimensions(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	g := grid.New(d)
	g.Move(grid.Right)

	r, vt := newTestRenderer(t, 80)
	if err := r.DrawGrid(g); err != nil {
		t.Fatalf("DrawGrid() unexpected error: %v", err)
	}

	want := "\r+----+\r\n" +
		"|    |\r\n" +
		"|   @|\r\n" +
		"|    |\r\n" +
		"+----+\r\n"
	if got := vt.Output(); got != want {
		t.Errorf("DrawGrid() output:\n%q\nwant:\n%q", got, want)
	}
}

func TestDrawGrid_DefaultSize(t *testing.T) {
	t.Parallel()

	d, _ := grid.NewDimensions(16, 8)
	r, vt := newTestRenderer(t, 80)
	if err := r.DrawGrid(grid.New(d)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(vt.Output(), "\r\n"), "\r\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[5] != "|        @       |" {
		t.Errorf("cursor row = %q", lines[5])
	}
	if strings.Count(vt.Output(), "@") != 1 {
		t.Error("exactly one cursor marker expected")
	}
}

func TestClearLine(t *testing.T) {
	t.Parallel()

	r, vt := newTestRenderer(t, 12)
	if err := r.ClearLine(); err != nil {
		t.Fatal(err)
	}
	if got, want := vt.Output(), "\r"+strings.Repeat(" ", 12)+"\r"; got != want {
		t.Errorf("ClearLine() = %q, want %q", got, want)
	}
}

func TestClearLine_WidthFallback(t *testing.T) {
	t.Parallel()

	r, vt := newTestRenderer(t, 12)
	vt.SetSizeError(errors.New("no tty"))
	if err := r.ClearLine(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(vt.Output(), " "); got != terminal.DefaultWidth {
		t.Errorf("cleared %d columns, want %d", got, terminal.DefaultWidth)
	}
}

func TestDrawInputLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode mode.Mode
		want string
	}{
		{name: "key mode", mode: mode.Key{}, want: "\rmov"},
		{name: "cmd empty", mode: cmdWith(""), want: "\rcmd  " + hint + " \rcmd|"},
		{name: "cmd nil buffer", mode: mode.Cmd{}, want: "\rcmd  " + hint + " \rcmd|"},
		{name: "cmd with text", mode: cmdWith("go north"), want: "\rcmd| go north"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, vt := newTestRenderer(t, 80)
			if err := r.DrawInputLine(tt.mode); err != nil {
				t.Fatalf("DrawInputLine() unexpected error: %v", err)
			}
			if got := vt.Output(); got != tt.want {
				t.Errorf("DrawInputLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDrawInputLine_ClipsFromLeft(t *testing.T) {
	t.Parallel()

	// "cmd| " occupies five columns, leaving five for the buffer.
	r, vt := newTestRenderer(t, 10)
	if err := r.DrawInputLine(cmdWith("abcdefghij")); err != nil {
		t.Fatal(err)
	}
	if got, want := vt.Output(), "\rcmd| fghij"; got != want {
		t.Errorf("DrawInputLine() = %q, want %q", got, want)
	}
}

func TestDrawInputLine_ColumnUnknown(t *testing.T) {
	t.Parallel()

	r, vt := newTestRenderer(t, 10)
	vt.SetColumnError(errors.New("column unavailable"))
	if err := r.DrawInputLine(cmdWith("abcdefghij")); err != nil {
		t.Fatal(err)
	}
	if got, want := vt.Output(), "\rcmd| abcdefghij"; got != want {
		t.Errorf("DrawInputLine() = %q, want %q", got, want)
	}
}

func TestClip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		s         string
		termWidth int
		col       int
		want      string
	}{
		{name: "twenty chars width 10 col 3", s: "abcdefghijklmnopqrst", termWidth: 10, col: 3, want: "nopqrst"},
		{name: "fits", s: "abc", termWidth: 10, col: 3, want: "abc"},
		{name: "exact", s: "abcdefg", termWidth: 10, col: 3, want: "abcdefg"},
		{name: "no room", s: "abc", termWidth: 5, col: 5, want: ""},
		{name: "past edge", s: "abc", termWidth: 5, col: 9, want: ""},
		{name: "wide runes", s: "日本語", termWidth: 10, col: 6, want: "本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := clip(tt.s, tt.termWidth, tt.col); got != tt.want {
				t.Errorf("clip(%q, %d, %d) = %q, want %q", tt.s, tt.termWidth, tt.col, got, tt.want)
			}
		})
	}
}

func TestEchoAndNotice(t *testing.T) {
	t.Parallel()

	r, vt := newTestRenderer(t, 80)
	if err := r.Echo("ab"); err != nil {
		t.Fatal(err)
	}
	if err := r.Echo(""); err != nil {
		t.Fatal(err)
	}
	if err := r.Notice("Bye"); err != nil {
		t.Fatal(err)
	}

	want := "\r[CMD]: ab\r\n\r[CMD]: \r\n\rBye\r\n"
	if got := vt.Output(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken pipe")
	r, vt := newTestRenderer(t, 80)
	vt.SetWriteError(errBroken)

	d, _ := grid.NewDimensions(2, 2)
	checks := map[string]error{
		"DrawGrid":      r.DrawGrid(grid.New(d)),
		"ClearLine":     r.ClearLine(),
		"DrawInputLine": r.DrawInputLine(cmdWith("x")),
		"Echo":          r.Echo("x"),
		"Notice":        r.Notice("x"),
	}
	for name, err := range checks {
		if !errors.Is(err, errBroken) {
			t.Errorf("%s error = %v, want wrapped %v", name, err, errBroken)
		}
	}
}

func TestFlush(t *testing.T) {
	t.Parallel()

	r, vt := newTestRenderer(t, 80)
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	if vt.FlushCount() != 1 {
		t.Errorf("FlushCount() = %d, want 1", vt.FlushCount())
	}
}
