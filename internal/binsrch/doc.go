// Package binsrch implements the sorted text hash index: building one from
// unsorted entries and answering membership queries against it by binary
// search over fixed-width records.
//
// # Building
//
//	b, err := binsrch.Initialize("/sets/nsrl-md5.idx", "nsrl-md5", "NSRL 2.80")
//	if err != nil {
//	    return err
//	}
//	for _, e := range entries {
//	    if err := b.Add(e.Hash, e.Offset); err != nil {
//	        b.Abort()
//	        return err
//	    }
//	}
//	err = b.Finalize()
//
// Entries are staged in an unsorted sibling file (UnsortedPath) and sorted
// into the final index by Finalize.
//
// # Querying
//
//	idx, err := binsrch.Open("/sets/nsrl-md5.idx")
//	...
//	if err := idx.Setup(types.HashTypeMD5); err != nil { ... }
//	offsets, err := idx.Find("d41d8cd98f00b204e9800998ecf8427e")
//
// On Linux and macOS the index is memory-mapped; elsewhere it is read into
// memory. Find does not mutate the Index and may be called concurrently
// once Setup has returned.
package binsrch
