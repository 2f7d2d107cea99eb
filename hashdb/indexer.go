package hashdb

import (
	"errors"
	"fmt"

	"github.com/joshuapare/hashkit/internal/binsrch"
	"github.com/joshuapare/hashkit/pkg/types"
)

// Indexer is the index service backends delegate to. Callers hold the Info
// lock.
type Indexer interface {
	// Setup ensures the index of info is open and holds records of type ht,
	// recording ht on info.
	Setup(info *Info, ht types.HashType) error
	// Initialize starts a new index for info tagged with dbType.
	Initialize(info *Info, dbType string) error
}

// DefaultIndexer implements Indexer over the sorted text index.
var DefaultIndexer Indexer = binsrchIndexer{}

type binsrchIndexer struct{}

func (binsrchIndexer) Setup(info *Info, ht types.HashType) error {
	return IdxSetup(info, ht)
}

func (binsrchIndexer) Initialize(info *Info, dbType string) error {
	return IdxInitialize(info, dbType)
}

// IdxSetup opens the index of info if needed and sets it up for ht.
func IdxSetup(info *Info, ht types.HashType) error {
	if info.closed {
		return types.ErrClosed
	}
	if info.idx == nil {
		idx, err := binsrch.Open(info.idxPath)
		if err != nil {
			return fmt.Errorf("hashdb: open index %s: %w", info.idxPath, err)
		}
		info.idx = idx
		info.logger.Debug("opened index",
			"path", info.idxPath,
			"dbtype", idx.DBType())
	}
	if err := info.idx.Setup(ht); err != nil {
		return fmt.Errorf("hashdb: setup %s index %s: %w", ht, info.idxPath, err)
	}
	info.hashType = ht
	info.hashLen = ht.Len()
	return nil
}

// HasIndex reports whether the index of info is open for ht.
func HasIndex(info *Info, ht types.HashType) bool {
	return info.idx != nil && info.hashType == ht
}

// IdxInitialize starts a new index build for info. A previous unfinished
// build is discarded. The current display name, if any, is written to the
// new header.
func IdxInitialize(info *Info, dbType string) error {
	if info.closed {
		return types.ErrClosed
	}
	if info.build != nil {
		info.build.Abort()
		info.build = nil
	}
	b, err := binsrch.Initialize(info.idxPath, dbType, info.Name())
	if err != nil {
		return fmt.Errorf("hashdb: initialize index %s: %w", info.idxPath, err)
	}
	info.build = b
	info.logger.Debug("initialized index build",
		"path", info.idxPath,
		"staging", binsrch.UnsortedPath(info.idxPath),
		"dbtype", dbType)
	return nil
}

// IdxAddEntry stages one index entry for the build started by IdxInitialize.
func IdxAddEntry(info *Info, hash string, offset uint64) error {
	if info.build == nil {
		return types.ErrNoBuild
	}
	return info.build.Add(hash, offset)
}

// IdxFinalize sorts the staged entries into the index file. Any previously
// open index is closed so the next Setup sees the new file.
func IdxFinalize(info *Info) error {
	if info.build == nil {
		return types.ErrNoBuild
	}
	b := info.build
	info.build = nil
	if err := b.Finalize(); err != nil {
		return fmt.Errorf("hashdb: finalize index %s: %w", info.idxPath, err)
	}
	info.logger.Debug("finalized index", "path", info.idxPath, "entries", b.Count())

	var closeErr error
	if info.idx != nil {
		closeErr = info.idx.Close()
		info.idx = nil
	}
	info.hashType = types.HashTypeInvalid
	info.hashLen = 0
	return closeErr
}

// IdxLookup returns the source offsets recorded for hash. Setup for the
// hash's type must have succeeded. It does not take the Info lock, so many
// lookups may run at once; the caller must keep IdxFinalize and Close from
// running concurrently with it.
func IdxLookup(info *Info, hash string) ([]uint64, error) {
	idx := info.idx
	if idx == nil {
		return nil, types.Wrap(types.ErrNoBuild, errors.New("index not open"))
	}
	return idx.Find(hash)
}
