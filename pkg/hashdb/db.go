package hashdb

import (
	"errors"
	"fmt"
	"sync"

	core "github.com/joshuapare/hashkit/hashdb"
	"github.com/joshuapare/hashkit/pkg/types"
)

// DB is an opened hash database.
type DB struct {
	backend core.Backend
	info    *core.Info

	// lifecycle is held shared by lookups and exclusively while the index
	// file is replaced or released.
	lifecycle sync.RWMutex

	nameTried bool // guarded by info lock
}

func newDB(b core.Backend) *DB {
	return &DB{backend: b, info: b.Info()}
}

// Backend returns the underlying backend, for capability probing.
func (db *DB) Backend() core.Backend { return db.backend }

// Type returns the backend variant.
func (db *DB) Type() core.DBType { return db.info.DBType() }

// IndexPath returns the index file path.
func (db *DB) IndexPath() string { return db.info.IdxPath() }

// Updateable reports whether entries may be added.
func (db *DB) Updateable() bool { return db.info.Updateable() }

// UsesExternalIndex reports whether lookups go through the index only.
func (db *DB) UsesExternalIndex() bool { return db.info.UsesExternalIndex() }

// HashType returns the hash type of the open index, or HashTypeInvalid
// before the first Name or Lookup call.
func (db *DB) HashType() types.HashType {
	db.info.Lock()
	defer db.info.Unlock()
	return db.info.HashType()
}

// Capabilities reports which operations the backend offers.
func (db *DB) Capabilities() CapabilitySet {
	return core.Capabilities(db.backend)
}

// Name resolves (once) and returns the display name.
func (db *DB) Name() string {
	return string(db.NameBytes())
}

// NameBytes is Name without string conversion; the name is stored
// byte-for-byte as found in the index header.
func (db *DB) NameBytes() []byte {
	db.info.Lock()
	defer db.info.Unlock()
	if !db.nameTried && !db.info.Closed() {
		db.backend.ResolveName()
		db.nameTried = true
	}
	return db.info.NameBytes()
}

// PrintableName returns Name as valid UTF-8.
func (db *DB) PrintableName() string {
	return PrintableName(db.NameBytes())
}

// Lookup reports whether hash is in the database. For each match fn, when
// non-nil, is called: once with an empty name in quick mode, otherwise once
// per source entry via the backend. Databases without a source always use
// quick mode.
func (db *DB) Lookup(hash string, flags Flags, fn LookupFunc) (bool, error) {
	ht, err := types.HashTypeForHex(hash)
	if err != nil {
		return false, err
	}

	db.lifecycle.RLock()
	defer db.lifecycle.RUnlock()

	if err := db.setup(ht); err != nil {
		return false, err
	}
	offsets, err := core.IdxLookup(db.info, hash)
	if err != nil {
		return false, err
	}
	if len(offsets) == 0 {
		return false, nil
	}
	if fn == nil {
		return true, nil
	}

	if flags&FlagQuick != 0 || db.info.DBPath() == "" {
		return true, stopOK(fn(hash, ""))
	}
	for _, off := range offsets {
		if err := db.backend.GetEntry(hash, off, flags, fn); err != nil {
			return true, stopOK(err)
		}
	}
	return true, nil
}

func (db *DB) setup(ht types.HashType) error {
	db.info.Lock()
	defer db.info.Unlock()
	if db.info.Closed() {
		return types.ErrClosed
	}
	if core.HasIndex(db.info, ht) {
		return nil
	}
	return core.DefaultIndexer.Setup(db.info, ht)
}

func stopOK(err error) error {
	if errors.Is(err, ErrStopLookup) {
		return nil
	}
	return err
}

// Entry asks the backend for the source entry at offset. Index-only
// databases always fail with types.ErrIdxOnlyLookup.
func (db *DB) Entry(hash string, offset uint64, flags Flags, fn LookupFunc) error {
	return db.backend.GetEntry(hash, offset, flags, fn)
}

// MakeIndex starts a new index build through the backend. dbType is the
// source format tag; backends may override it.
func (db *DB) MakeIndex(dbType string) error {
	db.info.Lock()
	defer db.info.Unlock()
	if db.info.Closed() {
		return types.ErrClosed
	}
	return db.backend.MakeIndex(dbType)
}

// AddIndexEntry stages one entry for the build started by MakeIndex.
func (db *DB) AddIndexEntry(hash string, offset uint64) error {
	db.info.Lock()
	defer db.info.Unlock()
	return core.IdxAddEntry(db.info, hash, offset)
}

// FinalizeIndex sorts the staged entries into the index file. Lookups wait
// until the new index is in place.
func (db *DB) FinalizeIndex() error {
	db.lifecycle.Lock()
	defer db.lifecycle.Unlock()
	db.info.Lock()
	defer db.info.Unlock()
	return core.IdxFinalize(db.info)
}

// AddComment attaches a comment to entry id if the backend offers it.
func (db *DB) AddComment(comment string, id int64) error {
	ca, ok := db.backend.(core.CommentAdder)
	if !ok {
		return types.Wrap(types.ErrUnsupported,
			fmt.Errorf("%s databases cannot add comments", db.info.DBType()))
	}
	db.info.Lock()
	defer db.info.Unlock()
	return ca.AddComment(comment, id)
}

// AddFilename attaches a file name to entry id if the backend offers it.
func (db *DB) AddFilename(filename string, id int64) error {
	fa, ok := db.backend.(core.FilenameAdder)
	if !ok {
		return types.Wrap(types.ErrUnsupported,
			fmt.Errorf("%s databases cannot add file names", db.info.DBType()))
	}
	db.info.Lock()
	defer db.info.Unlock()
	return fa.AddFilename(filename, id)
}

// Close releases the index. Close is idempotent.
func (db *DB) Close() error {
	db.lifecycle.Lock()
	defer db.lifecycle.Unlock()
	db.info.Lock()
	defer db.info.Unlock()
	return db.info.Close()
}
