// Package escape implements the byte-level escaping that lets a single
// sentinel byte (0x00) delimit records, values, and pointers inside the
// variable-length body of a node block, without a separate length table.
//
// Encoding:
//
//	0x00 0x00   record separator
//	0x00 0x01   value start
//	0x00 0x02   literal 0x00
//	0x00 0x03   pointer start
//	b (b!=0x00) the byte b, unescaped
//
// The codec is a pure byte-stream transform; it knows nothing about keys,
// values, or KV-sets. internal/kvset builds records on top of it.
package escape

// Marker identifies the meaning of a decoded token.
type Marker byte

const (
	// RecordSeparator ends one key/value/pointer record and starts the next.
	RecordSeparator Marker = iota
	// ValueStart switches accumulation from the key buffer to the value buffer.
	ValueStart
	// PointerStart switches accumulation to the pointer buffer.
	PointerStart
	// Literal carries a single unescaped data byte (including an escaped 0x00).
	Literal
)

const esc byte = 0x00

// AppendByte appends a single data byte to buf, escaping it if it is 0x00.
func AppendByte(buf []byte, b byte) []byte {
	if b == esc {
		return append(buf, esc, 0x02)
	}
	return append(buf, b)
}

// AppendBytes escapes and appends every byte of b to buf.
func AppendBytes(buf []byte, b []byte) []byte {
	for _, c := range b {
		buf = AppendByte(buf, c)
	}
	return buf
}

// AppendRecordSeparator appends the record-separator marker.
func AppendRecordSeparator(buf []byte) []byte {
	return append(buf, esc, 0x00)
}

// AppendValueStart appends the value-start marker.
func AppendValueStart(buf []byte) []byte {
	return append(buf, esc, 0x01)
}

// AppendPointerStart appends the pointer-start marker.
func AppendPointerStart(buf []byte) []byte {
	return append(buf, esc, 0x03)
}

// UnknownEscapeError reports an escape prefix (0x00) followed by a second
// byte that isn't one of the four recognized codes, or an escape prefix
// that is the last byte of the input (Code is then 0).
type UnknownEscapeError struct {
	Code byte
}

func (e *UnknownEscapeError) Error() string {
	return "escape: unrecognized escape code"
}

// Scanner tokenizes an escaped byte stream left to right. It never
// allocates beyond the input slice: Literal tokens return a byte, not a
// sub-slice.
type Scanner struct {
	data []byte
	pos  int
}

// NewScanner returns a Scanner positioned at the start of data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next returns the next token. At end of input it returns ok=false and a
// nil error. An unrecognized escape code returns a non-nil error.
func (s *Scanner) Next() (marker Marker, b byte, ok bool, err error) {
	if s.pos >= len(s.data) {
		return 0, 0, false, nil
	}

	c := s.data[s.pos]
	if c != esc {
		s.pos++
		return Literal, c, true, nil
	}

	// c == esc: this must be the start of a two-byte marker.
	if s.pos+1 >= len(s.data) {
		return 0, 0, false, &UnknownEscapeError{}
	}
	code := s.data[s.pos+1]
	s.pos += 2

	switch code {
	case 0x00:
		return RecordSeparator, 0, true, nil
	case 0x01:
		return ValueStart, 0, true, nil
	case 0x02:
		return Literal, 0x00, true, nil
	case 0x03:
		return PointerStart, 0, true, nil
	default:
		return 0, 0, false, &UnknownEscapeError{Code: code}
	}
}
