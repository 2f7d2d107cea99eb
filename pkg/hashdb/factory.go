package hashdb

import (
	"errors"
	"fmt"
	"os"
	"strings"

	core "github.com/joshuapare/hashkit/hashdb"
	"github.com/joshuapare/hashkit/hashdb/idxonly"
	"github.com/joshuapare/hashkit/pkg/types"
)

// indexSuffixes map an index file name back to its source database name.
var indexSuffixes = []string{"-md5.idx", "-sha1.idx", ".idx"}

// Open opens the hash database at path. Index files whose source database
// is absent (or any path when opts.IndexOnly is set) open as index-only
// databases. Source database formats are not supported by this package.
// The index itself is opened lazily by the first Name or Lookup call.
//
// Example:
//
//	db, err := hashdb.Open("nsrl-md5.idx", hashdb.OpenOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func Open(path string, opts OpenOptions) (*DB, error) {
	if path == "" {
		return nil, types.Wrap(types.ErrInvalidArg, errors.New("empty database path"))
	}

	if !opts.IndexOnly {
		src, isIndex := sourcePath(path)
		if !isIndex {
			return nil, types.Wrap(types.ErrUnsupported,
				fmt.Errorf("%s: source hash databases are not supported; open its index", path))
		}
		if fileExists(src) {
			return nil, types.Wrap(types.ErrUnsupported,
				fmt.Errorf("%s: source database %s is present; set IndexOnly to use the index alone", path, src))
		}
	}

	b, err := idxonly.New(path, idxonly.Options{Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	return newDB(b), nil
}

// sourcePath returns the source database an index path was derived from.
func sourcePath(path string) (string, bool) {
	lower := strings.ToLower(path)
	for _, suf := range indexSuffixes {
		if strings.HasSuffix(lower, suf) && len(path) > len(suf) {
			return path[:len(path)-len(suf)], true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// NewDB wraps an already constructed backend.
func NewDB(b core.Backend) (*DB, error) {
	if b == nil || b.Info() == nil {
		return nil, types.Wrap(types.ErrInvalidArg, errors.New("nil backend"))
	}
	return newDB(b), nil
}
