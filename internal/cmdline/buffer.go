// ABOUTME: Command buffer: an append-only text line edited from its end
// ABOUTME: Insert appends a rune, DeleteLast removes one, Clear empties; no mid-line cursor

package cmdline

// Buffer holds the text typed in command mode. The zero value is an
// empty buffer ready for use.
type Buffer struct {
	runes []rune
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Insert appends r to the end of the buffer. Any rune is accepted verbatim.
func (b *Buffer) Insert(r rune) {
	b.runes = append(b.runes, r)
}

// DeleteLast removes the last rune. It is a no-op on an empty buffer.
func (b *Buffer) DeleteLast() {
	if len(b.runes) == 0 {
		return
	}
	b.runes = b.runes[:len(b.runes)-1]
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
}

// Contents returns the buffered text.
func (b *Buffer) Contents() string {
	return string(b.runes)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.runes)
}
