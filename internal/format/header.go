package format

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// ReadLine reads a single header line with the semantics of C fgets into a
// buffer of size bytes: it returns at most size-1 bytes and stops after the
// first '\n', which is included. A line longer than size-1 bytes is split;
// the next call returns its continuation. io.EOF is returned only when no
// byte could be read.
func ReadLine(r *bufio.Reader, size int) ([]byte, error) {
	limit := size - 1
	if limit < 1 {
		return nil, fmt.Errorf("format: line buffer size %d too small", size)
	}
	out := make([]byte, 0, min(limit, 128))
	for len(out) < limit {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(out) > 0 {
				return out, nil
			}
			return nil, err
		}
		out = append(out, c)
		if c == '\n' {
			break
		}
	}
	return out, nil
}

// ParseTypeLine extracts the database type tag from a type header line.
func ParseTypeLine(line []byte) (string, error) {
	if !bytes.HasPrefix(line, []byte(HeadTypeStr)) {
		return "", ErrNoTypeLine
	}
	val, err := afterDelim(line[len(HeadTypeStr):])
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// ParseNameLine extracts the database name from a name header line: the
// bytes after the first '|' up to the first '\r' or '\n' or the end of the
// line. The name is returned verbatim; no encoding validation is done.
func ParseNameLine(line []byte) ([]byte, error) {
	if !bytes.HasPrefix(line, []byte(HeadNameStr)) {
		return nil, ErrNoNameMarker
	}
	return afterDelim(line)
}

func afterDelim(line []byte) ([]byte, error) {
	i := bytes.IndexByte(line, Delim)
	if i < 0 {
		return nil, ErrNoDelimiter
	}
	val := line[i+1:]
	if j := bytes.IndexAny(val, "\r\n"); j >= 0 {
		val = val[:j]
	}
	return val, nil
}

// TypeLine formats the type header line for dbType.
func TypeLine(dbType string) []byte {
	return fmt.Appendf(nil, "%s%c%s\n", HeadTypeStr, Delim, dbType)
}

// NameLine formats the name header line for name.
func NameLine(name string) []byte {
	return fmt.Appendf(nil, "%s%c%s\n", HeadNameStr, Delim, name)
}
