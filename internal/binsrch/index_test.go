package binsrch

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hashkit/internal/format"
	"github.com/joshuapare/hashkit/pkg/types"
)

const (
	md5Empty = "d41d8cd98f00b204e9800998ecf8427e"
	md5Abc   = "900150983cd24fb0d6963f7d28e17f72"
	md5Fox   = "9e107d9d372bb6826bd81d3542a419d6"
	sha1Abc  = "a9993e364706816aba3e25717850c26c9cd0d89d"
)

func buildIndex(t *testing.T, name string, entries map[string]uint64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set-md5.idx")
	b, err := Initialize(path, format.DBTypeMD5SumStr, name)
	require.NoError(t, err)
	for h, off := range entries {
		require.NoError(t, b.Add(h, off))
	}
	require.NoError(t, b.Finalize())
	return path
}

func TestOpenAndFind(t *testing.T) {
	path := buildIndex(t, "Known Files", map[string]uint64{
		md5Fox:   300,
		md5Empty: 100,
		md5Abc:   200,
	})

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()

	require.Equal(t, format.DBTypeMD5SumStr, idx.DBType())
	require.Equal(t, types.HashTypeInvalid, idx.HashType())
	require.NoError(t, idx.Setup(types.HashTypeMD5))
	require.Equal(t, 3, idx.Len())

	got, err := idx.Find(md5Abc)
	require.NoError(t, err)
	require.Equal(t, []uint64{200}, got)

	// Upper-case queries match too.
	got, err = idx.Find(strings.ToUpper(md5Empty))
	require.NoError(t, err)
	require.Equal(t, []uint64{100}, got)

	got, err = idx.Find("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = idx.Find("00000000000000000000000000000000")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFindDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.idx")
	b, err := Initialize(path, format.DBTypeMD5SumStr, "")
	require.NoError(t, err)
	for _, off := range []uint64{30, 10, 20} {
		require.NoError(t, b.Add(md5Abc, off))
	}
	require.NoError(t, b.Add(md5Empty, 5))
	require.NoError(t, b.Finalize())

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()
	require.NoError(t, idx.Setup(types.HashTypeMD5))

	got, err := idx.Find(md5Abc)
	require.NoError(t, err)
	require.Equal(t, []uint64{10, 20, 30}, got)
}

func TestSetupRejectsOtherHashType(t *testing.T) {
	path := buildIndex(t, "", map[string]uint64{md5Abc: 1})

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()

	err = idx.Setup(types.HashTypeSHA1)
	require.ErrorIs(t, err, types.ErrIncompatibleIndex)

	require.NoError(t, idx.Setup(types.HashTypeMD5))
	require.NoError(t, idx.Setup(types.HashTypeMD5), "repeat setup is a no-op")
	require.ErrorIs(t, idx.Setup(types.HashTypeSHA1), types.ErrIncompatibleIndex)
}

func TestSetupSHA1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set-sha1.idx")
	b, err := Initialize(path, format.DBTypeNSRLSHA1Str, "")
	require.NoError(t, err)
	require.NoError(t, b.Add(sha1Abc, 9))
	require.NoError(t, b.Finalize())

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()

	require.ErrorIs(t, idx.Setup(types.HashTypeMD5), types.ErrIncompatibleIndex)
	require.NoError(t, idx.Setup(types.HashTypeSHA1))
	got, err := idx.Find(sha1Abc)
	require.NoError(t, err)
	require.Equal(t, []uint64{9}, got)

	_, err = idx.Find(md5Abc)
	require.ErrorIs(t, err, types.ErrIncompatibleIndex)
}

func TestEmptyIndexAcceptsAnyType(t *testing.T) {
	path := buildIndex(t, "Empty", nil)

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Setup(types.HashTypeMD5))
	got, err := idx.Find(md5Abc)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.idx"))
	require.ErrorIs(t, err, types.ErrIndexMissing)

	kind, ok := types.KindOf(err)
	require.True(t, ok)
	require.Equal(t, types.ErrKindNotFound, kind)
}

func TestOpenBadHeader(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"no newline":   format.HeadTypeStr + "|md5sum",
		"wrong marker": "hello|md5sum\n",
		"name only":    format.HeadNameStr + "|x\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.idx")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := Open(path)
			require.ErrorIs(t, err, types.ErrBadHeader)
		})
	}
}

func TestSetupTruncatedRecords(t *testing.T) {
	path := buildIndex(t, "", map[string]uint64{md5Abc: 1, md5Empty: 2})
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-7], 0o644))

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()
	require.Error(t, idx.Setup(types.HashTypeMD5))
}

func TestReaderStartsAtHeader(t *testing.T) {
	path := buildIndex(t, "Foo Bar", map[string]uint64{md5Abc: 1})
	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()

	head, err := io.ReadAll(io.LimitReader(idx.Reader(), int64(len(format.HeadTypeStr))))
	require.NoError(t, err)
	require.Equal(t, format.HeadTypeStr, string(head))
}

func TestFindAfterClose(t *testing.T) {
	path := buildIndex(t, "", map[string]uint64{md5Abc: 1})
	idx, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, idx.Setup(types.HashTypeMD5))
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())

	_, err = idx.Find(md5Abc)
	require.True(t, errors.Is(err, types.ErrClosed))
}

func TestConcurrentFind(t *testing.T) {
	entries := map[string]uint64{md5Abc: 1, md5Empty: 2, md5Fox: 3}
	path := buildIndex(t, "", entries)
	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()
	require.NoError(t, idx.Setup(types.HashTypeMD5))

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h, want := range entries {
				got, err := idx.Find(h)
				if err != nil {
					errs <- err
					return
				}
				if len(got) != 1 || got[0] != want {
					errs <- errors.New("wrong offset for " + h)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
