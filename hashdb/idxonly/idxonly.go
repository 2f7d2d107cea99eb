// Package idxonly implements the hash database backend used when only the
// sorted index survives and the source database it was built from is gone.
//
// Such a database can still answer "is this hash known?" through the index,
// but it cannot report the source entry behind a hit, and it cannot be
// modified. The backend therefore:
//
//   - takes its display name from the index header instead of the source,
//   - always builds indexes as md5sum, the one format that needs no source,
//   - fails every GetEntry call with types.ErrIdxOnlyLookup,
//   - does not implement hashdb.CommentAdder or hashdb.FilenameAdder.
package idxonly

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/hashkit/hashdb"
	"github.com/joshuapare/hashkit/internal/format"
	"github.com/joshuapare/hashkit/pkg/types"
)

// Options configures New.
type Options struct {
	// Logger receives diagnostics, at debug level, when the name falls back
	// to the file name. Nil discards them.
	Logger *slog.Logger

	// Indexer is the index service. Nil selects hashdb.DefaultIndexer.
	Indexer hashdb.Indexer
}

// Backend is an index-only hash database.
type Backend struct {
	info    *hashdb.Info
	indexer hashdb.Indexer
}

var _ hashdb.Backend = (*Backend)(nil)

// New returns a read-only backend for the index at idxPath. The index is not
// opened until a name or lookup is requested, so the hash type stays
// HashTypeInvalid until then.
func New(idxPath string, opts Options) (*Backend, error) {
	if idxPath == "" {
		return nil, types.Wrap(types.ErrInvalidArg, errors.New("idxonly: empty index path"))
	}
	info, err := hashdb.NewInfo(hashdb.InfoConfig{
		DBType:            hashdb.DBTypeIdxOnly,
		IdxPath:           idxPath,
		Updateable:        false,
		UsesExternalIndex: true,
		Logger:            opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	indexer := opts.Indexer
	if indexer == nil {
		indexer = hashdb.DefaultIndexer
	}
	return &Backend{info: info, indexer: indexer}, nil
}

// Info returns the descriptor.
func (b *Backend) Info() *hashdb.Info { return b.info }

// ResolveName sets the display name from the second header line of the
// index, "<HeadNameStr>|<name>". If the index cannot be opened for MD5, or
// the header cannot be read or lacks the name marker, the name is derived
// from the index path instead. A marker without a '|' leaves the name unset.
func (b *Backend) ResolveName() {
	info := b.info
	log := info.Logger()
	info.ResetName()

	if err := b.indexer.Setup(info, types.HashTypeMD5); err != nil {
		log.Debug("failed to get name from index (index does not exist); using file name instead",
			"path", info.IdxPath(),
			"error", err)
		b.nameFromPath()
		return
	}

	name, err := b.readHeaderName()
	switch {
	case errors.Is(err, format.ErrNoDelimiter):
		log.Debug("index name header has no delimiter; name left unset",
			"path", info.IdxPath())
		return
	case err != nil:
		log.Debug("failed to read name from index; using file name instead",
			"path", info.IdxPath(),
			"error", err)
		b.nameFromPath()
		return
	}
	info.SetName(name)
}

// readHeaderName discards the type line and parses the name line.
func (b *Backend) readHeaderName() ([]byte, error) {
	r, err := b.info.IndexReader()
	if err != nil {
		return nil, err
	}
	br := bufio.NewReaderSize(r, format.NameMaxLen)
	if _, err := format.ReadLine(br, format.NameMaxLen); err != nil {
		return nil, fmt.Errorf("type line: %w", err)
	}
	line, err := format.ReadLine(br, format.NameMaxLen)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("name line: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("name line: %w", err)
	}
	return format.ParseNameLine(line)
}

func (b *Backend) nameFromPath() {
	b.info.SetName([]byte(hashdb.NameFromPath(b.info.IdxPath())))
}

// MakeIndex starts a new md5sum index. dbType is ignored: with no source
// file there is nothing to detect a format from.
func (b *Backend) MakeIndex(dbType string) error {
	if err := b.indexer.Initialize(b.info, format.DBTypeMD5SumStr); err != nil {
		return fmt.Errorf("idxonly_makeindex: %w", err)
	}
	return nil
}

// GetEntry always fails with types.ErrIdxOnlyLookup: there is no source
// database to read the entry from. fn is never called.
func (b *Backend) GetEntry(hash string, offset uint64, flags hashdb.Flags, fn hashdb.LookupFunc) error {
	return types.ErrIdxOnlyLookup
}
