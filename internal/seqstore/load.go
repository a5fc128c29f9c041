// internal/seqstore/load.go
package seqstore

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Load fills the store from r, one record per line. The first byte of every
// line is a marker ('>' or '<') and is dropped; the rest, clamped to the
// stride, becomes the record. Reading stops after 2*Pairs() lines.
func (s *Store) Load(r io.Reader) error {
	br := bufio.NewReader(r)
	k := 0
	for k < len(s.lens) {
		line, err := br.ReadBytes('\n')
		eof := err == io.EOF
		if err != nil && !eof {
			return fmt.Errorf("read record %d: %w", k, err)
		}
		if eof && len(line) == 0 {
			break
		}
		line = trimEOL(line)

		var content []byte
		if len(line) > 0 {
			content = line[1:]
		}
		n := len(content)
		if n > s.stride {
			n = s.stride
			s.truncated++
		}
		copy(s.buf[k*s.stride:], content[:n])
		s.lens[k] = n
		k++

		if eof {
			break
		}
	}
	s.lines = k
	return nil
}

func trimEOL(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// Open allocates a store and loads it from path. "-" reads stdin and a ".gz"
// suffix is decompressed on the fly.
func Open(path string, stride, pairs int) (*Store, error) {
	s, err := New(stride, pairs)
	if err != nil {
		return nil, err
	}
	rc, err := openReader(path)
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("%w %q: %v", ErrOpen, path, err)
	}
	defer rc.Close()

	start := time.Now()
	if err := s.Load(rc); err != nil {
		s.Release()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.readDur = time.Since(start)
	return s, nil
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
