package stream

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upper = TransformFunc(func(line string) (string, error) {
	return strings.ToUpper(line) + "\n", nil
})

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestDriver_PreservesOrderAndHandlesFinalLine(t *testing.T) {
	var out bytes.Buffer
	stats, err := NewDriver(upper, quietLogger()).Run(context.Background(), strings.NewReader("a\nb\r\n\nc"), &out)

	require.NoError(t, err)
	assert.Equal(t, "A\nB\n\nC\n", out.String())
	assert.Equal(t, Stats{Lines: 4, Emitted: 4}, stats)
}

func TestDriver_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	stats, err := NewDriver(upper, quietLogger()).Run(context.Background(), strings.NewReader(""), &out)

	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Zero(t, stats.Lines)
}

func TestDriver_EmptyResultEmitsNothing(t *testing.T) {
	drop := TransformFunc(func(line string) (string, error) {
		if line == "drop" {
			return "", nil
		}
		return line + "\n", nil
	})

	var out bytes.Buffer
	stats, err := NewDriver(drop, quietLogger()).Run(context.Background(), strings.NewReader("keep\ndrop\nkeep\n"), &out)

	require.NoError(t, err)
	assert.Equal(t, "keep\nkeep\n", out.String())
	assert.Equal(t, Stats{Lines: 3, Emitted: 2}, stats)
}

func TestDriver_TransformErrorAbortsAfterFlushingPriorLines(t *testing.T) {
	boom := errors.New("boom")
	failing := TransformFunc(func(line string) (string, error) {
		if line == "bad" {
			return "", boom
		}
		return line + "\n", nil
	})

	var out bytes.Buffer
	_, err := NewDriver(failing, quietLogger()).Run(context.Background(), strings.NewReader("one\ntwo\nbad\nthree\n"), &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 3, lineErr.Line)
	assert.Equal(t, "one\ntwo\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestDriver_WriteErrorIsFatal(t *testing.T) {
	_, err := NewDriver(upper, quietLogger()).Run(context.Background(), strings.NewReader("a\nb\n"), failingWriter{})

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestDriver_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := NewDriver(upper, quietLogger()).Run(ctx, strings.NewReader("a\n"), &out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestDriver_CancelInterruptsIdleInput(t *testing.T) {
	inR, inW := io.Pipe()
	defer inW.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := NewDriver(upper, quietLogger()).Run(ctx, inR, &out)
		done <- err
	}()

	_, err := io.WriteString(inW, "first\n")
	require.NoError(t, err)
	assert.Never(t, func() bool {
		return len(done) > 0
	}, 100*time.Millisecond, 10*time.Millisecond, "Run must keep waiting for input")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel while the input was idle")
	}
	assert.Equal(t, "FIRST\n", out.String())
}

func TestDriver_FlushesEachLineOfALiveStream(t *testing.T) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		_, err := NewDriver(upper, quietLogger()).Run(context.Background(), inR, outW)
		_ = outW.CloseWithError(err)
		done <- err
	}()

	lines := bufio.NewReader(outR)
	for _, in := range []string{"first", "second"} {
		_, err := io.WriteString(inW, in+"\n")
		require.NoError(t, err)

		got, err := readLineWithin(lines, 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(in)+"\n", got)
	}

	require.NoError(t, inW.Close())
	_, err := io.ReadAll(lines)
	require.NoError(t, err)
	require.NoError(t, <-done)
}

func readLineWithin(r *bufio.Reader, timeout time.Duration) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- result{line, err}
	}()
	select {
	case res := <-ch:
		return res.line, res.err
	case <-time.After(timeout):
		return "", errors.New("timed out waiting for output")
	}
}

func TestDriver_DecompressesGzipInput(t *testing.T) {
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	_, err := gz.Write([]byte("x\ny\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	var out bytes.Buffer
	_, err = NewDriver(upper, quietLogger()).Run(context.Background(), &compressed, &out)

	require.NoError(t, err)
	assert.Equal(t, "X\nY\n", out.String())
}

func TestDriver_DecompressesZstdInput(t *testing.T) {
	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = enc.Write([]byte("x\ny"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	var out bytes.Buffer
	_, err = NewDriver(upper, quietLogger()).Run(context.Background(), &compressed, &out)

	require.NoError(t, err)
	assert.Equal(t, "X\nY\n", out.String())
}

func TestDriver_TextStartingWithParenIsNotDecompressed(t *testing.T) {
	var out bytes.Buffer
	_, err := NewDriver(upper, quietLogger()).Run(context.Background(), strings.NewReader("(a)\n("), &out)

	require.NoError(t, err)
	assert.Equal(t, "(A)\n(\n", out.String())
}
