package hashdb

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/joshuapare/hashkit/internal/binsrch"
	"github.com/joshuapare/hashkit/internal/buf"
	"github.com/joshuapare/hashkit/internal/format"
	"github.com/joshuapare/hashkit/pkg/types"
)

// InfoConfig holds the construction-time fields of an Info. They cannot be
// changed afterwards.
type InfoConfig struct {
	DBType            DBType
	DBPath            string // source database; empty when only the index exists
	IdxPath           string // sorted index file
	Updateable        bool   // entries may be added
	UsesExternalIndex bool   // lookups go through IdxPath only
	Logger            *slog.Logger
}

// Info is the descriptor of one opened hash database.
type Info struct {
	mu sync.Mutex

	dbType            DBType
	dbPath            string
	idxPath           string
	updateable        bool
	usesExternalIndex bool
	logger            *slog.Logger

	name     *buf.Text
	hashType types.HashType
	hashLen  int

	idx    *binsrch.Index
	build  *binsrch.Builder
	closed bool
}

// NewInfo builds a descriptor. The index path must be non-empty. The hash
// type starts as HashTypeInvalid and the name starts zeroed.
func NewInfo(cfg InfoConfig) (*Info, error) {
	if cfg.IdxPath == "" {
		return nil, types.Wrap(types.ErrInvalidArg, errors.New("empty index path"))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Info{
		dbType:            cfg.DBType,
		dbPath:            cfg.DBPath,
		idxPath:           cfg.IdxPath,
		updateable:        cfg.Updateable,
		usesExternalIndex: cfg.UsesExternalIndex,
		logger:            logger,
		name:              buf.NewText(format.NameMaxLen),
		hashType:          types.HashTypeInvalid,
	}, nil
}

// Lock acquires the descriptor mutex.
func (i *Info) Lock() { i.mu.Lock() }

// Unlock releases the descriptor mutex.
func (i *Info) Unlock() { i.mu.Unlock() }

func (i *Info) DBType() DBType { return i.dbType }
func (i *Info) DBPath() string { return i.dbPath }
func (i *Info) IdxPath() string { return i.idxPath }
func (i *Info) Updateable() bool { return i.updateable }
func (i *Info) UsesExternalIndex() bool { return i.usesExternalIndex }
func (i *Info) Logger() *slog.Logger { return i.logger }
func (i *Info) HashType() types.HashType { return i.hashType }
func (i *Info) HashLen() int { return i.hashLen }
func (i *Info) Closed() bool { return i.closed }

// Name returns the display name, or "" while unresolved.
func (i *Info) Name() string { return i.name.String() }

// NameBytes returns a copy of the raw display name.
func (i *Info) NameBytes() []byte { return i.name.Bytes() }

// NameResolved reports whether a display name has been stored.
func (i *Info) NameResolved() bool { return !i.name.IsZero() }

// ResetName zeroes the display name.
func (i *Info) ResetName() { i.name.Reset() }

// SetName zeroes the display name and stores p, truncated to
// format.NameMaxLen-1 bytes. Callers strip line terminators first.
func (i *Info) SetName(p []byte) { i.name.Set(p) }

// IndexReader returns a reader over the open index starting at byte 0.
// Setup must have succeeded first.
func (i *Info) IndexReader() (io.Reader, error) {
	if i.closed {
		return nil, types.ErrClosed
	}
	if i.idx == nil {
		return nil, types.Wrap(types.ErrNoBuild, errors.New("index not open"))
	}
	return i.idx.Reader(), nil
}

// Close releases the open index and discards any unfinished build.
func (i *Info) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	if i.build != nil {
		i.build.Abort()
		i.build = nil
	}
	if i.idx != nil {
		err := i.idx.Close()
		i.idx = nil
		return err
	}
	return nil
}
