package binsrch

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/joshuapare/hashkit/internal/format"
	"github.com/joshuapare/hashkit/pkg/types"
)

// unsortedSuffix is appended to the index path to name the staging file.
const unsortedSuffix = "-ns"

// UnsortedPath returns the staging file used while building idxPath.
func UnsortedPath(idxPath string) string {
	return idxPath + unsortedSuffix
}

// Builder stages entries for a new index.
type Builder struct {
	idxPath string
	unsPath string
	dbType  string

	f       *os.File
	w       *bufio.Writer
	hashLen int
	n       int
}

// Initialize creates the staging file for idxPath and writes the header.
// The name line is written only when name is non-empty; it is cut at the
// first CR or LF and bounded by format.NameMaxLen.
func Initialize(idxPath, dbType, name string) (*Builder, error) {
	if idxPath == "" {
		return nil, types.Wrap(types.ErrInvalidArg, errors.New("empty index path"))
	}
	if dbType == "" {
		return nil, types.Wrap(types.ErrInvalidArg, errors.New("empty database type"))
	}

	unsPath := UnsortedPath(idxPath)
	f, err := os.OpenFile(unsPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "create unsorted index", Err: err}
	}

	b := &Builder{
		idxPath: idxPath,
		unsPath: unsPath,
		dbType:  dbType,
		f:       f,
		w:       bufio.NewWriter(f),
	}
	if _, err := b.w.Write(format.TypeLine(dbType)); err != nil {
		b.Abort()
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "write index header", Err: err}
	}
	if name = headerName(name); name != "" {
		if _, err := b.w.Write(format.NameLine(name)); err != nil {
			b.Abort()
			return nil, &types.Error{Kind: types.ErrKindIO, Msg: "write index header", Err: err}
		}
	}
	if err := b.w.Flush(); err != nil {
		b.Abort()
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "write index header", Err: err}
	}
	return b, nil
}

func headerName(name string) string {
	if i := bytes.IndexAny([]byte(name), "\r\n"); i >= 0 {
		name = name[:i]
	}
	if len(name) > format.NameMaxLen-1 {
		name = name[:format.NameMaxLen-1]
	}
	return name
}

// Add stages one entry. All entries of an index must share a hash type.
func (b *Builder) Add(hash string, off uint64) error {
	if b.f == nil {
		return types.ErrNoBuild
	}
	ht, err := types.HashTypeForHex(hash)
	if err != nil {
		return err
	}
	if b.hashLen == 0 {
		b.hashLen = ht.Len()
	} else if ht.Len() != b.hashLen {
		return types.Wrap(types.ErrInvalidArg,
			fmt.Errorf("%s hash in an index of %d-character hashes", ht, b.hashLen))
	}
	rec, err := format.EncodeRecord(hash, off)
	if err != nil {
		return types.Wrap(types.ErrInvalidArg, err)
	}
	if _, err := b.w.Write(rec); err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "write index entry", Err: err}
	}
	b.n++
	return nil
}

// Count returns the number of staged entries.
func (b *Builder) Count() int { return b.n }

// Path returns the final index path.
func (b *Builder) Path() string { return b.idxPath }

// DBType returns the database type written to the header.
func (b *Builder) DBType() string { return b.dbType }

// Finalize sorts the staged entries into the index file and removes the
// staging file. The index is replaced atomically.
func (b *Builder) Finalize() error {
	if b.f == nil {
		return types.ErrNoBuild
	}
	if err := b.w.Flush(); err != nil {
		b.Abort()
		return &types.Error{Kind: types.ErrKindIO, Msg: "flush unsorted index", Err: err}
	}
	if err := b.f.Close(); err != nil {
		b.f = nil
		_ = os.Remove(b.unsPath)
		return &types.Error{Kind: types.ErrKindIO, Msg: "close unsorted index", Err: err}
	}
	b.f = nil
	defer os.Remove(b.unsPath)

	staged, err := os.ReadFile(b.unsPath)
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "read unsorted index", Err: err}
	}
	header, records := splitHeader(staged)

	var sorted [][]byte
	if b.hashLen > 0 {
		width := format.RecordWidth(b.hashLen)
		if len(records)%width != 0 {
			return types.Wrap(types.ErrCorrupt, fmt.Errorf("staged records not a multiple of %d bytes", width))
		}
		sorted = make([][]byte, 0, len(records)/width)
		for off := 0; off < len(records); off += width {
			sorted = append(sorted, records[off:off+width])
		}
		slices.SortStableFunc(sorted, bytes.Compare)
	}

	return b.writeIndex(header, sorted)
}

func (b *Builder) writeIndex(header []byte, records [][]byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.idxPath), filepath.Base(b.idxPath)+".*")
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "create index", Err: err}
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	_, err = w.Write(header)
	for _, r := range records {
		if err != nil {
			break
		}
		_, err = w.Write(r)
	}
	if err == nil {
		err = w.Flush()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "write index", Err: err}
	}
	if err := os.Rename(tmp.Name(), b.idxPath); err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "install index", Err: err}
	}
	return nil
}

// splitHeader separates the type line and optional name line from the records.
func splitHeader(data []byte) ([]byte, []byte) {
	off := 0
	for _, marker := range []string{format.HeadTypeStr, format.HeadNameStr} {
		if !bytes.HasPrefix(data[off:], []byte(marker)) {
			break
		}
		nl := bytes.IndexByte(data[off:], '\n')
		if nl < 0 {
			break
		}
		off += nl + 1
	}
	return data[:off], data[off:]
}

// Abort discards the build and removes the staging file.
func (b *Builder) Abort() {
	if b.f != nil {
		_ = b.f.Close()
		b.f = nil
	}
	_ = os.Remove(b.unsPath)
}
