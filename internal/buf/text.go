package buf

// Text is a byte buffer with a fixed capacity, mirroring a NUL-terminated
// field of Cap bytes: it holds at most Cap-1 bytes of content. The zero
// content state is distinguishable from any set value via IsZero.
type Text struct {
	b   []byte
	cap int
}

// NewText returns an empty Text that holds at most capacity-1 bytes.
// A capacity below 1 is treated as 1 (always empty).
func NewText(capacity int) *Text {
	if capacity < 1 {
		capacity = 1
	}
	return &Text{b: make([]byte, 0, capacity-1), cap: capacity}
}

// Cap returns the declared capacity including the terminator slot.
func (t *Text) Cap() int { return t.cap }

// Reset clears the content back to the zero state.
func (t *Text) Reset() {
	clear(t.b[:cap(t.b)])
	t.b = t.b[:0]
}

// Set replaces the content with p, truncated to Cap-1 bytes, and returns the
// number of bytes stored. Bytes are copied verbatim.
func (t *Text) Set(p []byte) int {
	t.Reset()
	if limit := t.cap - 1; len(p) > limit {
		p = p[:limit]
	}
	t.b = append(t.b, p...)
	return len(p)
}

// SetString is Set for a string.
func (t *Text) SetString(s string) int { return t.Set([]byte(s)) }

// Bytes returns a copy of the content.
func (t *Text) Bytes() []byte { return append([]byte(nil), t.b...) }

// String returns the content as a string.
func (t *Text) String() string { return string(t.b) }

// Len returns the content length.
func (t *Text) Len() int { return len(t.b) }

// IsZero reports whether nothing has been stored since the last Reset.
func (t *Text) IsZero() bool { return len(t.b) == 0 }
