package hashdb

import (
	"log/slog"

	core "github.com/joshuapare/hashkit/hashdb"
)

// OpenOptions controls how Open picks and configures a backend.
type OpenOptions struct {
	// IndexOnly opens path as an index even when its source database is
	// present next to it.
	IndexOnly bool

	// Logger receives debug diagnostics (name fallbacks, index opens).
	// Nil discards them.
	Logger *slog.Logger
}

// Flags modify a lookup (re-exported for convenience).
type Flags = core.Flags

// Lookup flags.
const (
	FlagQuick = core.FlagQuick
	FlagExt   = core.FlagExt
)

// LookupFunc receives each lookup match (re-exported for convenience).
type LookupFunc = core.LookupFunc

// ErrStopLookup stops a lookup early without error.
var ErrStopLookup = core.ErrStopLookup

// CapabilitySet lists the operations a database offers.
type CapabilitySet = core.CapabilitySet

// Capabilities (re-exported for convenience).
const (
	CapResolveName = core.CapResolveName
	CapMakeIndex   = core.CapMakeIndex
	CapGetEntry    = core.CapGetEntry
	CapAddComment  = core.CapAddComment
	CapAddFilename = core.CapAddFilename
)
