package types

import (
	"encoding/hex"
	"fmt"
)

// HashType identifies the digest algorithm an index is sorted by.
type HashType uint8

const (
	HashTypeInvalid HashType = iota // not yet known; set once an index is opened
	HashTypeMD5
	HashTypeSHA1
)

// Digest sizes in hex characters.
const (
	MD5HexLen  = 32
	SHA1HexLen = 40
)

// Len returns the hex length of a digest of this type, or 0 for HashTypeInvalid.
func (h HashType) Len() int {
	switch h {
	case HashTypeMD5:
		return MD5HexLen
	case HashTypeSHA1:
		return SHA1HexLen
	default:
		return 0
	}
}

// String implements the Stringer interface for HashType.
func (h HashType) String() string {
	switch h {
	case HashTypeMD5:
		return "md5"
	case HashTypeSHA1:
		return "sha1"
	case HashTypeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("UNKNOWN_HASH_%d", uint8(h))
	}
}

// HashTypeForHex infers the hash type of a hex digest from its length and
// validates that every character is hexadecimal.
func HashTypeForHex(s string) (HashType, error) {
	var ht HashType
	switch len(s) {
	case MD5HexLen:
		ht = HashTypeMD5
	case SHA1HexLen:
		ht = HashTypeSHA1
	default:
		return HashTypeInvalid, Wrap(ErrInvalidArg, fmt.Errorf("hash %q has length %d", s, len(s)))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return HashTypeInvalid, Wrap(ErrInvalidArg, fmt.Errorf("hash %q: %w", s, err))
	}
	return ht, nil
}
