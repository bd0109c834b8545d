// Package kvset implements the ordered key/value/optional-block-reference
// container that makes up a node block's body, and its serialize/deserialize
// pair over the escape codec in internal/escape.
package kvset

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"gringottsdb/internal/buf"
	"gringottsdb/internal/escape"
)

// ErrCorrupt is wrapped by every error this package returns while decoding
// a malformed byte stream: an unrecognized escape code, a pointer payload
// of the wrong length, or invalid UTF-8 in a key or value.
var ErrCorrupt = errors.New("kvset: corrupt data")

// Entry is one record in a KVSet: a key, its value (defaulting to the
// empty string when only a block reference was ever set), and an optional
// block reference.
type Entry struct {
	Key    string
	Value  string
	HasRef bool
	Ref    uint64
}

// KVSet is an ordered mapping from string key to (value, optional block
// reference), kept sorted ascending by key so that Serialize produces
// byte-identical output for byte-identical logical content.
type KVSet struct {
	entries []Entry
}

// New returns an empty KVSet.
func New() *KVSet {
	return &KVSet{}
}

// Clone returns an independent copy of s. Entries are value types, so a
// slice copy suffices.
func (s *KVSet) Clone() *KVSet {
	cp := make([]Entry, len(s.entries))
	copy(cp, s.entries)
	return &KVSet{entries: cp}
}

// Len reports the number of entries in the set.
func (s *KVSet) Len() int {
	return len(s.entries)
}

// Entries returns the entries in ascending key order. The returned slice
// must not be mutated by the caller.
func (s *KVSet) Entries() []Entry {
	return s.entries
}

func (s *KVSet) search(key string) (int, bool) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Key >= key
	})
	if i < len(s.entries) && s.entries[i].Key == key {
		return i, true
	}
	return i, false
}

// Get returns the value stored for key, and whether key is present at all
// (via a value, a block reference, or both).
func (s *KVSet) Get(key string) (string, bool) {
	i, found := s.search(key)
	if !found {
		return "", false
	}
	return s.entries[i].Value, true
}

// GetRef returns the block reference stored for key, if any.
func (s *KVSet) GetRef(key string) (uint64, bool) {
	i, found := s.search(key)
	if !found || !s.entries[i].HasRef {
		return 0, false
	}
	return s.entries[i].Ref, true
}

// Put installs value for key, returning the prior value and whether key
// was already present (with a value, a reference, or both).
func (s *KVSet) Put(key, value string) (string, bool) {
	i, found := s.search(key)
	if found {
		prior := s.entries[i].Value
		s.entries[i].Value = value
		return prior, true
	}
	s.insertAt(i, Entry{Key: key, Value: value})
	return "", false
}

// PutRef installs a block reference for key, returning the prior reference
// (if any) and whether key was already present.
func (s *KVSet) PutRef(key string, ref uint64) (uint64, bool) {
	i, found := s.search(key)
	if found {
		prior := s.entries[i].Ref
		hadRef := s.entries[i].HasRef
		s.entries[i].HasRef = true
		s.entries[i].Ref = ref
		return prior, hadRef
	}
	s.insertAt(i, Entry{Key: key, HasRef: true, Ref: ref})
	return 0, false
}

func (s *KVSet) insertAt(i int, e Entry) {
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

// LastKey returns the maximum key currently present, used by the traversal
// layer to decide whether to walk further right or to descend here.
func (s *KVSet) LastKey() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	return s.entries[len(s.entries)-1].Key, true
}

// Split removes a trailing slice of entries (the upper half by key, roughly
// half by count) from s and returns them as a new KVSet. s keeps the lower
// half.
func (s *KVSet) Split() *KVSet {
	n := len(s.entries)
	mid := n / 2
	upper := make([]Entry, n-mid)
	copy(upper, s.entries[mid:])
	s.entries = s.entries[:mid:mid]
	return &KVSet{entries: upper}
}

// Serialize encodes s in ascending key order: for each entry, the escaped
// key bytes, a value-start marker, the escaped value bytes, and (if
// present) a pointer-start marker followed by the 8 little-endian bytes of
// the reference, each escaped. A record separator precedes every entry but
// the first.
func (s *KVSet) Serialize() []byte {
	var out []byte
	for i, e := range s.entries {
		if i > 0 {
			out = escape.AppendRecordSeparator(out)
		}
		out = escape.AppendBytes(out, []byte(e.Key))
		out = escape.AppendValueStart(out)
		out = escape.AppendBytes(out, []byte(e.Value))
		if e.HasRef {
			out = escape.AppendPointerStart(out)
			refBytes := buf.PutU64LE(e.Ref)
			out = escape.AppendBytes(out, refBytes[:])
		}
	}
	return out
}

// target identifies which buffer a Literal token currently accumulates into.
type target int

const (
	targetKey target = iota
	targetValue
	targetPointer
)

// Deserialize decodes bytes produced by Serialize. Empty input decodes to
// an empty KVSet. A pointer payload whose length isn't 0 or 8 bytes, an
// unrecognized escape code, or invalid UTF-8 in a key/value all return an
// error wrapping ErrCorrupt.
func Deserialize(data []byte) (*KVSet, error) {
	out := New()
	if len(data) == 0 {
		return out, nil
	}

	var keyBuf, valBuf, ptrBuf []byte
	cur := targetKey

	commit := func() error {
		if !utf8.Valid(keyBuf) {
			return fmt.Errorf("%w: key is not valid UTF-8", ErrCorrupt)
		}
		if !utf8.Valid(valBuf) {
			return fmt.Errorf("%w: value is not valid UTF-8", ErrCorrupt)
		}
		key := string(keyBuf)
		out.Put(key, string(valBuf))
		switch len(ptrBuf) {
		case 0:
			// no block reference for this entry
		case 8:
			out.PutRef(key, buf.U64LE(ptrBuf))
		default:
			return fmt.Errorf("%w: pointer payload has invalid length %d", ErrCorrupt, len(ptrBuf))
		}
		keyBuf, valBuf, ptrBuf = nil, nil, nil
		cur = targetKey
		return nil
	}

	scanner := escape.NewScanner(data)
	for {
		marker, b, ok, err := scanner.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if !ok {
			break
		}
		switch marker {
		case escape.Literal:
			switch cur {
			case targetKey:
				keyBuf = append(keyBuf, b)
			case targetValue:
				valBuf = append(valBuf, b)
			case targetPointer:
				ptrBuf = append(ptrBuf, b)
			}
		case escape.ValueStart:
			cur = targetValue
		case escape.PointerStart:
			cur = targetPointer
		case escape.RecordSeparator:
			if err := commit(); err != nil {
				return nil, err
			}
		}
	}

	if err := commit(); err != nil {
		return nil, err
	}
	return out, nil
}
