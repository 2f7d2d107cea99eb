// Package types defines the shared vocabulary of the hash database API:
// typed errors with stable categories and the hash algorithms an index can
// be built for.
//
// Design goals:
//   - Typed errors so callers branch on intent (bad argument, missing index,
//     malformed header) rather than on message text.
//   - Small value types (HashType) that are cheap to copy and compare.
//
// This package has no dependencies beyond the standard library.
package types
