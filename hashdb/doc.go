// Package hashdb provides the generic layer shared by every hash database
// backend: the per-database descriptor (Info), the polymorphic Backend
// interface, and the index service that backends delegate to.
//
// # Backends and capabilities
//
// Every backend implements Backend: it can resolve a display name, build an
// index, and look up the source entry behind an index hit. Mutation is an
// optional capability expressed by the separate CommentAdder and
// FilenameAdder interfaces. A backend that cannot add entries simply does not
// implement them, so callers can tell "not offered" apart from "offered but
// did nothing":
//
//	if fa, ok := backend.(hashdb.FilenameAdder); ok {
//	    err = fa.AddFilename(name, id)
//	}
//
// Capabilities summarizes the same probes as a bit set.
//
// # Index service
//
// Backends do not read or build index files themselves. They call an
// Indexer, normally DefaultIndexer, which opens the sorted index for a hash
// type (Setup) or starts a new one (Initialize). Tests substitute their own
// Indexer to observe what a backend asks for.
//
// # Locking
//
// Info carries a mutex guarding lazily populated metadata (name, hash type,
// open index). Backends never take it; the caller dispatching into a
// backend (see pkg/hashdb) holds it around ResolveName, MakeIndex and Setup.
package hashdb
