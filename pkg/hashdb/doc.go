/*
Package hashdb provides a high-level API for answering "is this hash known?"
against precomputed hash sets such as the NSRL.

# Quick Start

Open an index whose source database is gone and look up a hash:

	db, err := hashdb.Open("/sets/nsrl-md5.idx", hashdb.OpenOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	defer db.Close()

	known, err := db.Lookup("d41d8cd98f00b204e9800998ecf8427e", hashdb.FlagQuick, nil)

# Index-only databases

When only the sorted index survives, the database is opened as an
index-only database. Membership queries work as usual, but:

  - Lookup always answers in quick mode: callbacks receive the hash with an
    empty name, because no source entry exists to describe the hit.
  - Entry always fails with types.ErrIdxOnlyLookup.
  - AddComment and AddFilename are not offered (see Capabilities).
  - Name comes from the index header, or from the file name when the
    header carries none.

# Concurrency

A DB may be shared between goroutines. Lookups run in parallel once the
index for their hash type is open; MakeIndex, FinalizeIndex and Close are
serialized against them.
*/
package hashdb
