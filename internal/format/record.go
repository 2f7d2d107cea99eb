package format

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/joshuapare/hashkit/internal/buf"
)

// maxOffset is the largest value representable in OffsetWidth digits.
const maxOffset = 9_999_999_999_999_999

// EncodeRecord formats one index record. The hash is upper-cased; callers
// validate it beforehand.
func EncodeRecord(hash string, off uint64) ([]byte, error) {
	if off > maxOffset {
		return nil, fmt.Errorf("%w: offset %d exceeds %d digits", ErrBadRecord, off, OffsetWidth)
	}
	out := make([]byte, 0, RecordWidth(len(hash)))
	out = append(out, bytes.ToUpper([]byte(hash))...)
	out = append(out, Delim)
	out = fmt.Appendf(out, "%0*d\n", OffsetWidth, off)
	return out, nil
}

// DecodeRecord splits the record starting at rec[0] into its hash and
// offset. hashLen is the digest width of the index.
func DecodeRecord(rec []byte, hashLen int) ([]byte, uint64, error) {
	r, ok := buf.Slice(rec, 0, RecordWidth(hashLen))
	if !ok {
		return nil, 0, ErrTruncated
	}
	if r[hashLen] != Delim || r[len(r)-1] != '\n' {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadRecord, r)
	}
	off, err := strconv.ParseUint(string(r[hashLen+1:len(r)-1]), 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: offset: %w", ErrBadRecord, err)
	}
	return r[:hashLen], off, nil
}
