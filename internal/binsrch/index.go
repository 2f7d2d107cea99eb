package binsrch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joshuapare/hashkit/internal/buf"
	"github.com/joshuapare/hashkit/internal/format"
	"github.com/joshuapare/hashkit/internal/mmfile"
	"github.com/joshuapare/hashkit/pkg/types"
)

// Index is an opened sorted hash index.
type Index struct {
	path    string
	data    []byte
	release func() error

	dbType     string
	recordsOff int

	hashType types.HashType
	hashLen  int
	width    int
	count    int
}

// Open maps the index at path and validates its type header. The hash type
// is not known until Setup is called.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.Wrap(types.ErrIndexMissing, err)
		}
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "stat index", Err: err}
	}
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "map index", Err: err}
	}

	idx := &Index{path: path, data: data, release: release}
	if err := idx.parseHeader(); err != nil {
		_ = release()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) parseHeader() error {
	end := bytes.IndexByte(idx.data, '\n')
	if end < 0 {
		return types.Wrap(types.ErrBadHeader, format.ErrNoTypeLine)
	}
	dbType, err := format.ParseTypeLine(idx.data[:end+1])
	if err != nil {
		return types.Wrap(types.ErrBadHeader, err)
	}
	idx.dbType = dbType
	off := end + 1

	if bytes.HasPrefix(idx.data[off:], []byte(format.HeadNameStr)) {
		if nl := bytes.IndexByte(idx.data[off:], '\n'); nl >= 0 {
			off += nl + 1
		} else {
			// Unterminated name line at end of file: no records.
			off = len(idx.data)
		}
	}
	idx.recordsOff = off
	return nil
}

// Setup verifies that the index holds records for ht and prepares it for
// Find. Calling Setup again with the same type is a no-op; a different type
// fails with ErrIncompatibleIndex.
func (idx *Index) Setup(ht types.HashType) error {
	if idx.data == nil {
		return types.ErrClosed
	}
	if ht.Len() == 0 {
		return types.Wrap(types.ErrUnsupported, fmt.Errorf("hash type %s", ht))
	}
	if idx.hashType != types.HashTypeInvalid {
		if idx.hashType != ht {
			return types.Wrap(types.ErrIncompatibleIndex,
				fmt.Errorf("index is %s, requested %s", idx.hashType, ht))
		}
		return nil
	}

	width := format.RecordWidth(ht.Len())
	region := len(idx.data) - idx.recordsOff
	if region%width != 0 {
		return types.Wrap(types.ErrIncompatibleIndex,
			fmt.Errorf("%d record bytes are not a multiple of %s record width %d", region, ht, width))
	}
	count := region / width
	if _, err := buf.CheckRecordBounds(len(idx.data), idx.recordsOff, count, width); err != nil {
		return types.Wrap(types.ErrCorrupt, err)
	}
	if count > 0 {
		if _, _, err := format.DecodeRecord(idx.data[idx.recordsOff:], ht.Len()); err != nil {
			return types.Wrap(types.ErrIncompatibleIndex, err)
		}
	}

	idx.hashType = ht
	idx.hashLen = ht.Len()
	idx.width = width
	idx.count = count
	return nil
}

// Find returns the source offsets of every record matching hash, in index
// order. A hash that is not present yields an empty slice and no error.
func (idx *Index) Find(hash string) ([]uint64, error) {
	if idx.data == nil {
		return nil, types.ErrClosed
	}
	if idx.hashType == types.HashTypeInvalid {
		return nil, types.Wrap(types.ErrNoBuild, errors.New("index not set up"))
	}
	if len(hash) != idx.hashLen {
		return nil, types.Wrap(types.ErrIncompatibleIndex,
			fmt.Errorf("hash length %d, index holds %s", len(hash), idx.hashType))
	}
	key := []byte(strings.ToUpper(hash))

	first := sort.Search(idx.count, func(i int) bool {
		return bytes.Compare(idx.recordHash(i), key) >= 0
	})

	var offsets []uint64
	for i := first; i < idx.count; i++ {
		h, off, err := format.DecodeRecord(idx.data[idx.recordsOff+i*idx.width:], idx.hashLen)
		if err != nil {
			return nil, types.Wrap(types.ErrCorrupt, fmt.Errorf("record %d: %w", i, err))
		}
		if !bytes.Equal(h, key) {
			break
		}
		offsets = append(offsets, off)
	}
	return offsets, nil
}

func (idx *Index) recordHash(i int) []byte {
	start := idx.recordsOff + i*idx.width
	return idx.data[start : start+idx.hashLen]
}

// Reader returns a reader positioned at the first byte of the index file.
func (idx *Index) Reader() io.Reader {
	return bytes.NewReader(idx.data)
}

// Path returns the index file path.
func (idx *Index) Path() string { return idx.path }

// DBType returns the source database type recorded in the header.
func (idx *Index) DBType() string { return idx.dbType }

// HashType returns the hash type set by Setup, or HashTypeInvalid.
func (idx *Index) HashType() types.HashType { return idx.hashType }

// Len returns the number of records, valid after Setup.
func (idx *Index) Len() int { return idx.count }

// Close releases the mapping. Close is idempotent.
func (idx *Index) Close() error {
	if idx.data == nil {
		return nil
	}
	idx.data = nil
	return idx.release()
}
