package format

import "errors"

var (
	// ErrNoTypeLine indicates the first header line lacks HeadTypeStr.
	ErrNoTypeLine = errors.New("format: missing index type header")
	// ErrNoNameMarker indicates the second header line lacks HeadNameStr.
	ErrNoNameMarker = errors.New("format: missing index name header")
	// ErrNoDelimiter indicates a header line carries its marker but no '|'.
	ErrNoDelimiter = errors.New("format: header delimiter not found")
	// ErrTruncated indicates the buffer lacked the bytes required for a record.
	ErrTruncated = errors.New("format: truncated record")
	// ErrBadRecord indicates a record whose hash or offset is malformed.
	ErrBadRecord = errors.New("format: malformed record")
)
