// Package ansi removes terminal styling sequences from streamed build output.
package ansi

import (
	"bytes"
	"io"
)

const esc = 0x1b

// sequences is the closed set of styling sequences that are removed. Any
// other escape sequence passes through untouched.
var sequences = [][]byte{
	[]byte("\x1b[1m"),
	[]byte("\x1b[0;32m"),
	[]byte("\x1b[31m"),
	[]byte("\x1b[32m"),
	[]byte("\x1b[33m"),
	[]byte("\x1b[36m"),
	[]byte("\x1b[91m"),
	[]byte("\x1b[34;1m"),
	[]byte("\x1b[0m"),
}

func isPrefix(candidate []byte) bool {
	for _, seq := range sequences {
		if bytes.HasPrefix(seq, candidate) {
			return true
		}
	}
	return false
}

func isSequence(candidate []byte) bool {
	for _, seq := range sequences {
		if bytes.Equal(seq, candidate) {
			return true
		}
	}
	return false
}

// Stripper is an incremental matcher. It is either idle or building a
// candidate sequence in buf. A completed sequence is only dropped when the
// next byte arrives, so output lags input by at most one sequence.
//
// A Stripper holds the state of one stream and must not be shared between
// streams or used concurrently.
type Stripper struct {
	buf []byte
}

// New returns an idle Stripper
func New() *Stripper {
	return &Stripper{}
}

// Building reports whether a candidate sequence is pending
func (s *Stripper) Building() bool {
	return len(s.buf) > 0
}

// Step consumes one byte and appends whatever can be emitted to out
func (s *Stripper) Step(out []byte, c byte) []byte {
	if len(s.buf) == 0 {
		if c == esc {
			s.buf = append(s.buf, c)
			return out
		}
		return append(out, c)
	}

	if isSequence(s.buf) {
		// completed on the previous byte: drop it and treat c afresh
		s.buf = s.buf[:0]
		return s.Step(out, c)
	}

	if isPrefix(append(s.buf, c)) {
		s.buf = append(s.buf, c)
		return out
	}

	// not a styling sequence after all
	out = append(out, s.buf...)
	s.buf = s.buf[:0]
	return s.Step(out, c)
}

// Strip filters a chunk of input. Bytes that may begin a sequence are held
// back until a later chunk or Flush decides them.
func (s *Stripper) Strip(chunk []byte) []byte {
	out := make([]byte, 0, len(chunk))
	for _, c := range chunk {
		out = s.Step(out, c)
	}
	return out
}

// StripString is Strip for strings
func (s *Stripper) StripString(chunk string) string {
	return string(s.Strip([]byte(chunk)))
}

// Flush ends the stream. A pending complete sequence is dropped and a
// pending partial one is emitted as text.
func (s *Stripper) Flush() []byte {
	if len(s.buf) == 0 {
		return nil
	}
	var out []byte
	if !isSequence(s.buf) {
		out = append(out, s.buf...)
	}
	s.buf = s.buf[:0]
	return out
}

// String strips a complete string in one pass
func String(text string) string {
	s := New()
	out := s.Strip([]byte(text))
	return string(append(out, s.Flush()...))
}

// Writer strips styling sequences from everything written through it
type Writer struct {
	w        io.Writer
	stripper *Stripper
}

// NewWriter wraps w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, stripper: New()}
}

// Write reports len(p) on success even though fewer bytes may reach the
// underlying writer.
func (w *Writer) Write(p []byte) (int, error) {
	out := w.stripper.Strip(p)
	if len(out) == 0 {
		return len(p), nil
	}
	if _, err := w.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close flushes any held back bytes. It does not close the underlying writer.
func (w *Writer) Close() error {
	out := w.stripper.Flush()
	if len(out) == 0 {
		return nil
	}
	_, err := w.w.Write(out)
	return err
}
