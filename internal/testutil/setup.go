// Package testutil builds hash index fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/hashkit/internal/binsrch"
)

// Well-known digests used across tests.
const (
	MD5Empty = "d41d8cd98f00b204e9800998ecf8427e"         // md5("")
	MD5Abc   = "900150983cd24fb0d6963f7d28e17f72"         // md5("abc")
	MD5Fox   = "9e107d9d372bb6826bd81d3542a419d6"         // md5("The quick brown fox jumps over the lazy dog")
	SHA1Abc  = "a9993e364706816aba3e25717850c26c9cd0d89d" // sha1("abc")
)

// Entry is one record for WriteIndex.
type Entry struct {
	Hash   string
	Offset uint64
}

// WriteIndex builds a sorted index at dir/file with the given header and
// entries and returns its path. Calls t.Fatal on failure.
//
// Example:
//
//	path := testutil.WriteIndex(t, t.TempDir(), "nsrl.idx", "md5sum", "NSRL",
//	    testutil.Entry{Hash: testutil.MD5Abc, Offset: 10})
func WriteIndex(t *testing.T, dir, file, dbType, name string, entries ...Entry) string {
	t.Helper()

	path := filepath.Join(dir, file)
	b, err := binsrch.Initialize(path, dbType, name)
	if err != nil {
		t.Fatalf("initialize index: %v", err)
	}
	for _, e := range entries {
		if err := b.Add(e.Hash, e.Offset); err != nil {
			b.Abort()
			t.Fatalf("add %s: %v", e.Hash, err)
		}
	}
	if err := b.Finalize(); err != nil {
		t.Fatalf("finalize index: %v", err)
	}
	return path
}

// WriteRaw writes content verbatim to dir/file and returns its path. Use it
// for malformed or hand-crafted headers.
func WriteRaw(t *testing.T, dir, file, content string) string {
	t.Helper()

	path := filepath.Join(dir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
