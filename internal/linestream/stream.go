// Package linestream reads a log file line by line, decompressing
// transparently when the path carries a .gz suffix.
package linestream

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMaxLineSize is the maximum size (in bytes) of a single log line.
const DefaultMaxLineSize = 1024 * 1024 // 1MB

// Stream is a single-pass, non-restartable sequence of text lines. The
// caller owns its lifetime and must Close it.
type Stream struct {
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
}

// Open opens path for line streaming. Files ending in .gz are decompressed
// on the fly; anything else is read as plain text.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linestream: open: %w", err)
	}

	s := &Stream{file: f}
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("linestream: gzip: %w", err)
		}
		s.gz = gz
		r = gz
	}

	s.scanner = bufio.NewScanner(r)
	buf := make([]byte, DefaultMaxLineSize)
	s.scanner.Buffer(buf, DefaultMaxLineSize)
	return s, nil
}

// Scan advances to the next line. It returns false at EOF or on error;
// check Err after the loop.
func (s *Stream) Scan() bool { return s.scanner.Scan() }

// Text returns the current line without its trailing newline.
func (s *Stream) Text() string { return s.scanner.Text() }

// Err returns the first error encountered while scanning, nil at clean EOF.
func (s *Stream) Err() error { return s.scanner.Err() }

// Close releases the underlying file handle (and gzip state when present).
func (s *Stream) Close() error {
	if s.gz != nil {
		_ = s.gz.Close()
	}
	return s.file.Close()
}

// CountLines reads path once and returns its line count. It exists so that
// callers wanting percentage progress can pre-count before streaming; the
// extra pass is skipped entirely when no progress observer is installed.
func CountLines(path string) (int, error) {
	s, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	n := 0
	for s.Scan() {
		n++
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("linestream: count: %w", err)
	}
	return n, nil
}
