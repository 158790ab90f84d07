package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// openInput wraps r in a buffered reader, transparently decoding gzip and
// zstd input. Only a first byte that could start a compressed frame triggers
// the longer lookahead, so plain text streams are never held back.
func openInput(r io.Reader, size int) (*bufio.Reader, func(), error) {
	br := bufio.NewReaderSize(r, size)
	first, err := br.Peek(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return br, func() {}, nil
		}
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	if first[0] != gzipMagic[0] && first[0] != zstdMagic[0] {
		return br, func() {}, nil
	}

	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip input: %w", err)
		}
		return bufio.NewReaderSize(gz, size), func() { _ = gz.Close() }, nil
	case bytes.HasPrefix(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd input: %w", err)
		}
		return bufio.NewReaderSize(dec, size), dec.Close, nil
	default:
		return br, func() {}, nil
	}
}
