package hashdb

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// PrintableName converts a raw database name to UTF-8. Names are stored
// byte-for-byte from the index header; older Windows tools wrote them in
// Windows-1252, so invalid UTF-8 is decoded as that code page.
func PrintableName(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string([]rune(string(raw)))
	}
	return string(decoded)
}
