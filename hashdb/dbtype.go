package hashdb

import (
	"fmt"

	"github.com/joshuapare/hashkit/internal/format"
)

// DBType identifies the backend variant of a hash database.
type DBType int

const (
	DBTypeInvalid DBType = iota
	DBTypeNSRL
	DBTypeMD5Sum
	DBTypeHK
	DBTypeEnCase
	DBTypeIdxOnly
)

// String returns the tag used for the type in index headers.
func (t DBType) String() string {
	switch t {
	case DBTypeNSRL:
		return format.DBTypeNSRLStr
	case DBTypeMD5Sum:
		return format.DBTypeMD5SumStr
	case DBTypeHK:
		return format.DBTypeHKStr
	case DBTypeEnCase:
		return format.DBTypeEnCaseStr
	case DBTypeIdxOnly:
		return format.DBTypeIdxOnlyStr
	case DBTypeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("UNKNOWN_DBTYPE_%d", int(t))
	}
}
