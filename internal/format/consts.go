// Package format houses the encoders and decoders for the sorted text hash
// index. The layout is shared with The Sleuth Kit's binary-search index so
// existing NSRL and md5sum indexes open unchanged:
//
//	00000000000000000000000000000000000000000|<dbtype>\n      type line
//	00000000000000000000000000000000000000001|<db name>\n     name line (optional)
//	<UPPERCASE HEX HASH>|<16-digit decimal offset>\n          records, sorted
//
// Every record in one index has the same width, so records can be located
// by arithmetic and searched with a plain binary search.
package format

const (
	// HeadTypeStr prefixes the first header line, which carries the source
	// database type. It is one character wider than a SHA-1 digest so it
	// sorts ahead of every record.
	HeadTypeStr = "00000000000000000000000000000000000000000"

	// HeadNameStr prefixes the optional second header line carrying the
	// human-readable database name.
	HeadNameStr = "00000000000000000000000000000000000000001"

	// Delim separates a header marker or a hash from its payload.
	Delim = '|'

	// NameMaxLen bounds a database name including its terminator slot, and
	// bounds each header read.
	NameMaxLen = 512

	// OffsetWidth is the number of zero-padded decimal digits in a record offset.
	OffsetWidth = 16
)

// Source database type tags written into the type line.
const (
	DBTypeNSRLStr     = "nsrl"
	DBTypeNSRLMD5Str  = "nsrl-md5"
	DBTypeNSRLSHA1Str = "nsrl-sha1"
	DBTypeMD5SumStr   = "md5sum"
	DBTypeHKStr       = "hk"
	DBTypeEnCaseStr   = "encase"
	DBTypeIdxOnlyStr  = "idxonly"
)

// RecordWidth returns the on-disk width of one record for a digest of
// hashLen hex characters, newline included.
func RecordWidth(hashLen int) int {
	return hashLen + 1 + OffsetWidth + 1
}
