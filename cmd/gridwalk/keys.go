// ABOUTME: --keys output: the key binding reference rendered from markdown with glamour
// ABOUTME: Falls back to the raw markdown when rendering fails

package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrap = 80

func printKeys(w io.Writer, md string) error {
	width := defaultWrap
	if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 {
		width = cols
	}
	_, err := io.WriteString(w, renderMarkdown(md, width)+"\n")
	return err
}

func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(rendered, "\n ")
}
