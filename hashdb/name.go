package hashdb

import "strings"

// Suffixes stripped, in order, when deriving a name from a path.
var (
	indexSuffixes  = []string{"-md5.idx", "-sha1.idx", ".idx"}
	sourceSuffixes = []string{".txt", ".csv", ".hsh", ".hash", ".md5", ".sha1", ".kdb"}
)

// NameFromPath derives a display name from a database or index path: the
// base name with any index suffix and then any source database extension
// removed. Both '/' and '\' separate directories.
func NameFromPath(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = trimSuffixFold(base, indexSuffixes)
	base = trimSuffixFold(base, sourceSuffixes)
	return base
}

func trimSuffixFold(s string, suffixes []string) string {
	lower := strings.ToLower(s)
	for _, suf := range suffixes {
		if len(s) > len(suf) && strings.HasSuffix(lower, suf) {
			return s[:len(s)-len(suf)]
		}
	}
	return s
}
