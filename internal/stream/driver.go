// Package stream drives a line transformer over an input stream.
//
// The driver pulls one line at a time, hands it to the transformer and writes
// the result before reading the next line, so output order always matches
// input order and a slow sink throttles reading. Output is flushed whenever
// no further line is ready, which keeps live tails responsive without a
// syscall per line on bulk input.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

const bufferSize = 64 * 1024

// Transformer maps one input line (without its terminator) to the text to
// emit. An empty result emits nothing.
type Transformer interface {
	Transform(line string) (string, error)
}

// TransformFunc adapts a function to Transformer.
type TransformFunc func(line string) (string, error)

// Transform calls fn(line).
func (fn TransformFunc) Transform(line string) (string, error) {
	return fn(line)
}

// Stats summarizes a completed run.
type Stats struct {
	Lines   int
	Emitted int
}

// Driver runs a Transformer over a stream.
type Driver struct {
	transformer Transformer
	logger      log.FieldLogger
}

// NewDriver returns a Driver. A nil logger uses the standard logrus logger.
func NewDriver(t Transformer, logger log.FieldLogger) *Driver {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Driver{transformer: t, logger: logger}
}

// Run processes r until EOF, writing to w. It stops at the first transform
// or write error. Reads happen on a separate goroutine so cancelling ctx
// returns promptly even while the input is idle; the abandoned read ends when
// the process exits or r delivers more data.
func (d *Driver) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, r)
	out := newWriter(w, bufferSize)

	for {
		if err := ctx.Err(); err != nil {
			return stats, errors.Join(err, out.Flush())
		}

		var res readResult
		select {
		case res = <-lines:
		default:
			// Nothing queued: the input is idle, so show what we have.
			if err := out.Flush(); err != nil {
				return stats, err
			}
			select {
			case res = <-lines:
			case <-ctx.Done():
				return stats, errors.Join(ctx.Err(), out.Flush())
			}
		}

		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return stats, errors.Join(res.err, out.Flush())
		}
		if res.line == "" && res.err != nil {
			break
		}
		stats.Lines++

		block, err := d.transformer.Transform(trimEOL(res.line))
		if err != nil {
			return stats, errors.Join(&LineError{Line: stats.Lines, Err: err}, out.Flush())
		}
		if block != "" {
			stats.Emitted++
			if err := out.WriteString(block); err != nil {
				return stats, err
			}
		}

		if res.err != nil {
			break
		}
	}

	if err := out.Flush(); err != nil {
		return stats, err
	}
	d.logger.WithFields(log.Fields{
		"lines":   stats.Lines,
		"emitted": stats.Emitted,
	}).Debug("input exhausted")
	return stats, nil
}

// readResult is one line from the input. err is set on the last result: io.EOF
// at the end of input, anything else on failure.
type readResult struct {
	line string
	err  error
}

// readLines reads r line by line on its own goroutine. The channel is
// unbuffered, so reading stays at most one line ahead of the consumer. The
// goroutine stops after delivering an error or when ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan readResult {
	ch := make(chan readResult)
	go func() {
		send := func(res readResult) bool {
			select {
			case ch <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}

		in, closeInput, err := openInput(r, bufferSize)
		if err != nil {
			send(readResult{err: err})
			return
		}
		defer closeInput()

		for {
			line, err := in.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				err = fmt.Errorf("read input: %w", err)
			}
			if !send(readResult{line: line, err: err}) || err != nil {
				return
			}
		}
	}()
	return ch
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
