// ABOUTME: KeyReader turns a raw byte stream (stdin in raw mode) into a blocking stream of key events.
// ABOUTME: Buffers partial escape sequences and UTF-8 runes; a lone ESC resolves after ~50ms of silence.

package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/gridwalk/pkg/tui/key"
)

const (
	readBufSize = 256
	escTimeout  = 50 * time.Millisecond
	// maxSeqLen bounds a CSI sequence; longer parameter runs are dropped.
	maxSeqLen = 32
)

// KeyReader parses bytes from an io.Reader into key events. Run owns the
// parse state; ReadKey hands the parsed keys to a single consumer.
type KeyReader struct {
	reader io.Reader
	keys   chan key.Key
	buf    []byte
}

// NewKeyReader creates a KeyReader over r. Call Run to start parsing.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: r,
		keys:   make(chan key.Key),
		buf:    make([]byte, 0, readBufSize),
	}
}

// ReadKey blocks until the next key event arrives, ctx is done, or input
// ends. It returns io.EOF once Run has returned and all keys are consumed.
func (kr *KeyReader) ReadKey(ctx context.Context) (key.Key, error) {
	select {
	case <-ctx.Done():
		return key.Key{}, ctx.Err()
	case k, ok := <-kr.keys:
		if !ok {
			return key.Key{}, io.EOF
		}
		return k, nil
	}
}

// Run reads and parses input until the reader fails, reaches EOF, or ctx is
// cancelled. Cancellation and EOF are normal endings and return nil.
// The underlying Read may stay blocked after Run returns; the goroutine
// doing it exits on the next byte or when the process ends.
func (kr *KeyReader) Run(ctx context.Context) error {
	defer close(kr.keys)

	readCh := make(chan readResult)
	done := make(chan struct{})
	defer close(done)
	go kr.readLoop(readCh, done)

	var escTimer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-escTimer:
			escTimer = nil
			if !kr.resolvePending(ctx) {
				return nil
			}
			if len(kr.buf) > 0 {
				escTimer = time.After(escTimeout)
			}
		case res, ok := <-readCh:
			if !ok || res.err != nil {
				kr.flushRemaining(ctx)
				if ok && !errors.Is(res.err, io.EOF) {
					return fmt.Errorf("reading input: %w", res.err)
				}
				return nil
			}
			kr.buf = append(kr.buf, res.data...)
			if !kr.dispatch(ctx) {
				return nil
			}
			escTimer = nil
			if len(kr.buf) > 0 {
				escTimer = time.After(escTimeout)
			}
		}
	}
}

// readResult holds the outcome of a single Read call.
type readResult struct {
	data []byte
	err  error
}

// readLoop continuously reads from the reader and sends data on ch.
// It stops when done is closed.
func (kr *KeyReader) readLoop(ch chan<- readResult, done <-chan struct{}) {
	defer close(ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := kr.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- readResult{data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case ch <- readResult{err: err}:
			case <-done:
			}
			return
		}
	}
}

// dispatch emits every complete key at the front of the buffer. It leaves
// an incomplete sequence in place and returns false if ctx ended.
func (kr *KeyReader) dispatch(ctx context.Context) bool {
	for len(kr.buf) > 0 {
		consumed, k, wait := parse(kr.buf)
		if wait {
			return true
		}
		kr.buf = kr.buf[consumed:]
		if !kr.emit(ctx, k) {
			return false
		}
	}
	return true
}

// resolvePending runs after escTimeout of silence, when the buffered bytes
// can no longer complete. A lone ESC is the Escape key. A truncated escape
// sequence is dropped whole so none of its bytes reach the caller as text.
func (kr *KeyReader) resolvePending(ctx context.Context) bool {
	if len(kr.buf) == 0 {
		return true
	}
	k, n := key.Key{Type: key.KeyUnknown}, 1
	if kr.buf[0] == 0x1b {
		if len(kr.buf) == 1 {
			k = key.Key{Type: key.KeyEscape}
		} else {
			n = len(kr.buf)
		}
	}
	kr.buf = kr.buf[n:]
	if !kr.emit(ctx, k) {
		return false
	}
	return kr.dispatch(ctx)
}

// flushRemaining drains the buffer once no more input can arrive.
func (kr *KeyReader) flushRemaining(ctx context.Context) {
	for len(kr.buf) > 0 {
		if !kr.dispatch(ctx) {
			return
		}
		if !kr.resolvePending(ctx) {
			return
		}
	}
}

func (kr *KeyReader) emit(ctx context.Context, k key.Key) bool {
	select {
	case kr.keys <- k:
		return true
	case <-ctx.Done():
		return false
	}
}

// parse attempts to parse one key from the front of buf.
// Returns (consumed bytes, parsed key, needs-more-input flag).
func parse(buf []byte) (int, key.Key, bool) {
	if buf[0] == 0x1b {
		if len(buf) == 1 {
			// Lone ESC or the start of a sequence.
			return 0, key.Key{}, true
		}
		return parseEscape(buf)
	}

	if !utf8.FullRune(buf) {
		return 0, key.Key{}, true
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	return size, key.ParseKey(string(buf[:size])), false
}

// parseEscape frames one ESC-prefixed key at the front of buf, which holds
// at least two bytes. CSI runs to its final byte (0x40-0x7E) and SS3 is
// always three bytes; either is decoded as a single key, KeyUnknown when
// the sequence is not one the key package knows.
func parseEscape(buf []byte) (int, key.Key, bool) {
	switch buf[1] {
	case '[':
		return frameCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return 0, key.Key{}, true
		}
		if buf[2] >= 0x20 && buf[2] <= 0x7e {
			return 3, key.ParseKey(string(buf[:3])), false
		}
	}

	if buf[1] >= 0x20 && buf[1] <= 0x7e {
		return 2, key.ParseKey(string(buf[:2])), false
	}
	return 1, key.Key{Type: key.KeyEscape}, false
}

func frameCSI(buf []byte) (int, key.Key, bool) {
	for i := 2; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b >= 0x40 && b <= 0x7e:
			return i + 1, key.ParseKey(string(buf[:i+1])), false
		case b < 0x20 || b > 0x7e:
			// Interrupted by a control byte; drop the partial sequence.
			return i, key.Key{Type: key.KeyUnknown}, false
		}
	}
	if len(buf) >= maxSeqLen {
		return len(buf), key.Key{Type: key.KeyUnknown}, false
	}
	return 0, key.Key{}, true
}
