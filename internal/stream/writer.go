package stream

import (
	"bufio"
	"io"
)

// writer is a bufio.Writer that reports failures as *WriteError and stays
// failed after the first one.
type writer struct {
	buf *bufio.Writer
	err error
}

func newWriter(w io.Writer, size int) *writer {
	return &writer{buf: bufio.NewWriterSize(w, size)}
}

func (w *writer) WriteString(s string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.buf.WriteString(s); err != nil {
		w.err = &WriteError{Err: err}
	}
	return w.err
}

func (w *writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.buf.Flush(); err != nil {
		w.err = &WriteError{Err: err}
	}
	return w.err
}
