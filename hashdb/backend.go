package hashdb

import (
	"errors"
	"strings"
)

// Flags modify a lookup.
type Flags uint32

const (
	// FlagQuick reports membership only; no source entry is consulted.
	FlagQuick Flags = 1 << iota
	// FlagExt asks backends for extended entry details where available.
	FlagExt
)

// LookupFunc receives each match. name is empty for quick lookups.
// Returning ErrStopLookup ends the lookup without error; any other error
// ends it and is returned to the caller.
type LookupFunc func(hash, name string) error

// ErrStopLookup stops a lookup early.
var ErrStopLookup = errors.New("hashdb: stop lookup")

// Backend is implemented by every hash database variant.
type Backend interface {
	// Info returns the descriptor shared with the generic layer.
	Info() *Info
	// ResolveName populates the display name. It never fails; backends fall
	// back to NameFromPath.
	ResolveName()
	// MakeIndex starts a new index for the database. dbType names the
	// source format; backends with a single format may ignore it.
	MakeIndex(dbType string) error
	// GetEntry reports the source entries at offset for hash through fn.
	GetEntry(hash string, offset uint64, flags Flags, fn LookupFunc) error
}

// CommentAdder is implemented by backends that can attach comments.
type CommentAdder interface {
	AddComment(comment string, id int64) error
}

// FilenameAdder is implemented by backends that can attach file names.
type FilenameAdder interface {
	AddFilename(filename string, id int64) error
}

// Capability is one operation a backend may offer.
type Capability uint8

const (
	CapResolveName Capability = 1 << iota
	CapMakeIndex
	CapGetEntry
	CapAddComment
	CapAddFilename
)

// CapabilitySet is a set of Capability bits.
type CapabilitySet uint8

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool { return s&CapabilitySet(c) != 0 }

// String lists the capabilities in the set, comma separated.
func (s CapabilitySet) String() string {
	names := []struct {
		c    Capability
		name string
	}{
		{CapResolveName, "resolve-name"},
		{CapMakeIndex, "make-index"},
		{CapGetEntry, "get-entry"},
		{CapAddComment, "add-comment"},
		{CapAddFilename, "add-filename"},
	}
	var out []string
	for _, n := range names {
		if s.Has(n.c) {
			out = append(out, n.name)
		}
	}
	return strings.Join(out, ",")
}

// Capabilities probes b for the optional interfaces.
func Capabilities(b Backend) CapabilitySet {
	s := CapabilitySet(CapResolveName | CapMakeIndex | CapGetEntry)
	if _, ok := b.(CommentAdder); ok {
		s |= CapabilitySet(CapAddComment)
	}
	if _, ok := b.(FilenameAdder); ok {
		s |= CapabilitySet(CapAddFilename)
	}
	return s
}
