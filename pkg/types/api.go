package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // malformed index header or record
	ErrKindCorrupt                    // structural corruption (bad sizes, unsorted records)
	ErrKindUnsupported                // valid database or hash type we don't support
	ErrKindNotFound                   // missing index file or hash
	ErrKindArg                        // invalid argument or operation not offered by the backend
	ErrKindState                      // invalid operation for current state (e.g., closed, no build)
	ErrKindIO                         // read/write failure on the index or build file
)

// String returns a short lowercase label for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindNotFound:
		return "not found"
	case ErrKindArg:
		return "invalid argument"
	case ErrKindState:
		return "state"
	case ErrKindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so wrapped copies
// created with Wrap still satisfy errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: cause}
}

// KindOf reports the ErrKind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidArg indicates a caller passed an unusable argument (empty path, bad hash).
	ErrInvalidArg = &Error{Kind: ErrKindArg, Msg: "invalid argument"}
	// ErrIdxOnlyLookup is returned by every entry lookup against an index-only database.
	ErrIdxOnlyLookup = &Error{
		Kind: ErrKindArg,
		Msg:  "idxonly_getentry: not supported when index-only option is used",
	}
	// ErrIndexMissing indicates the index file does not exist.
	ErrIndexMissing = &Error{Kind: ErrKindNotFound, Msg: "index file not found"}
	// ErrBadHeader indicates the index lacks a valid type header line.
	ErrBadHeader = &Error{Kind: ErrKindFormat, Msg: "not a hash index (bad header)"}
	// ErrCorrupt indicates records of inconsistent width or ordering.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt index structure"}
	// ErrUnsupported indicates a recognized but unsupported database or hash type.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported hash database feature"}
	// ErrIncompatibleIndex indicates the index was built for a different hash type.
	ErrIncompatibleIndex = &Error{Kind: ErrKindUnsupported, Msg: "index hash type mismatch"}
	// ErrClosed indicates use of a database after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "hash database is closed"}
	// ErrNoBuild indicates an index entry was added without an initialized build.
	ErrNoBuild = &Error{Kind: ErrKindState, Msg: "index build not initialized"}
)
