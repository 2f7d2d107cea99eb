package binsrch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hashkit/internal/format"
	"github.com/joshuapare/hashkit/pkg/types"
)

func TestFinalizeWritesSortedIndex(t *testing.T) {
	path := buildIndex(t, "Known Files", map[string]uint64{
		md5Fox:   3,
		md5Abc:   2,
		md5Empty: 1,
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := string(format.TypeLine(format.DBTypeMD5SumStr)) +
		string(format.NameLine("Known Files")) +
		"900150983CD24FB0D6963F7D28E17F72|0000000000000002\n" +
		"9E107D9D372BB6826BD81D3542A419D6|0000000000000003\n" +
		"D41D8CD98F00B204E9800998ECF8427E|0000000000000001\n"
	require.Equal(t, want, string(data))

	_, err = os.Stat(UnsortedPath(path))
	require.True(t, os.IsNotExist(err), "staging file must be removed")
}

func TestInitializeWithoutName(t *testing.T) {
	path := buildIndex(t, "", nil)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(format.TypeLine(format.DBTypeMD5SumStr)), string(data))
}

func TestInitializeSanitizesName(t *testing.T) {
	path := buildIndex(t, "first line\nsecond", nil)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), format.HeadNameStr+"|first line\n")
	require.NotContains(t, string(data), "second")

	long := strings.Repeat("n", 2*format.NameMaxLen)
	path = buildIndex(t, long, nil)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "|"+strings.Repeat("n", format.NameMaxLen-1)+"\n")
}

func TestInitializeStagesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.idx")
	b, err := Initialize(path, format.DBTypeNSRLMD5Str, "")
	require.NoError(t, err)
	defer b.Abort()

	require.Equal(t, path+"-ns", UnsortedPath(path))
	require.Equal(t, format.DBTypeNSRLMD5Str, b.DBType())
	require.Equal(t, path, b.Path())
	_, err = os.Stat(UnsortedPath(path))
	require.NoError(t, err)
}

func TestInitializeRejectsEmptyArgs(t *testing.T) {
	_, err := Initialize("", format.DBTypeMD5SumStr, "")
	require.ErrorIs(t, err, types.ErrInvalidArg)

	_, err = Initialize(filepath.Join(t.TempDir(), "x.idx"), "", "")
	require.ErrorIs(t, err, types.ErrInvalidArg)
}

func TestInitializeUnwritableDir(t *testing.T) {
	_, err := Initialize(filepath.Join(t.TempDir(), "missing", "x.idx"), format.DBTypeMD5SumStr, "")
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	require.Equal(t, types.ErrKindIO, kind)
}

func TestAddValidatesHashes(t *testing.T) {
	b, err := Initialize(filepath.Join(t.TempDir(), "x.idx"), format.DBTypeMD5SumStr, "")
	require.NoError(t, err)
	defer b.Abort()

	require.ErrorIs(t, b.Add("not-a-hash", 1), types.ErrInvalidArg)
	require.ErrorIs(t, b.Add(strings.Repeat("g", 32), 1), types.ErrInvalidArg)

	require.NoError(t, b.Add(md5Abc, 1))
	require.ErrorIs(t, b.Add(sha1Abc, 2), types.ErrInvalidArg, "mixed hash types")
	require.Equal(t, 1, b.Count())
}

func TestAbortRemovesStaging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.idx")
	b, err := Initialize(path, format.DBTypeMD5SumStr, "")
	require.NoError(t, err)
	require.NoError(t, b.Add(md5Abc, 1))
	b.Abort()

	_, err = os.Stat(UnsortedPath(path))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.ErrorIs(t, b.Add(md5Abc, 1), types.ErrNoBuild)
	require.ErrorIs(t, b.Finalize(), types.ErrNoBuild)
}

func TestFinalizeReplacesExistingIndex(t *testing.T) {
	path := buildIndex(t, "old", map[string]uint64{md5Abc: 1})

	b, err := Initialize(path, format.DBTypeMD5SumStr, "new")
	require.NoError(t, err)
	require.NoError(t, b.Add(md5Fox, 7))
	require.NoError(t, b.Finalize())

	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()
	require.NoError(t, idx.Setup(types.HashTypeMD5))

	got, err := idx.Find(md5Abc)
	require.NoError(t, err)
	require.Empty(t, got)
	got, err = idx.Find(md5Fox)
	require.NoError(t, err)
	require.Equal(t, []uint64{7}, got)
}
