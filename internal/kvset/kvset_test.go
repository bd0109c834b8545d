package kvset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeTwoEntriesNoPointers(t *testing.T) {
	s := New()
	s.Put("yes", "no")
	s.Put("hello", "goodbye")

	want := []byte{
		104, 101, 108, 108, 111, 0, 1, 103, 111, 111, 100, 98, 121, 101,
		0, 0,
		121, 101, 115, 0, 1, 110, 111,
	}
	require.Equal(t, want, s.Serialize())
}

func TestPointerRoundTrip(t *testing.T) {
	s := New()
	s.Put("key", "value")
	s.PutRef("key", 22)

	got, err := Deserialize(s.Serialize())
	require.NoError(t, err)

	v, ok := got.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)

	ref, ok := got.GetRef("key")
	require.True(t, ok)
	require.Equal(t, uint64(22), ref)
}

func TestMultipleKeysPlusOnePointer(t *testing.T) {
	s := New()
	s.Put("key", "value")
	s.Put("key2", "value2")
	s.PutRef("key", 22)

	got, err := Deserialize(s.Serialize())
	require.NoError(t, err)

	v, ok := got.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)

	v2, ok := got.Get("key2")
	require.True(t, ok)
	require.Equal(t, "value2", v2)

	_, hasRef := got.GetRef("key2")
	require.False(t, hasRef)

	ref, ok := got.GetRef("key")
	require.True(t, ok)
	require.Equal(t, uint64(22), ref)
}

func TestPointerOnlyEntry(t *testing.T) {
	s := New()
	s.PutRef("key", 22)

	got, err := Deserialize(s.Serialize())
	require.NoError(t, err)

	ref, ok := got.GetRef("key")
	require.True(t, ok)
	require.Equal(t, uint64(22), ref)

	v, ok := got.Get("key")
	require.True(t, ok)
	require.Equal(t, "", v)
}

func TestDeserializeEmpty(t *testing.T) {
	got, err := Deserialize(nil)
	require.NoError(t, err)
	require.Equal(t, 0, got.Len())
}

func TestRoundTripPreservesMapping(t *testing.T) {
	s := New()
	s.Put("b", "2")
	s.Put("a", "1")
	s.Put("c", "3")
	s.PutRef("a", 7)

	got, err := Deserialize(s.Serialize())
	require.NoError(t, err)
	require.Equal(t, s.Entries(), got.Entries())
}

func TestLastWriterWins(t *testing.T) {
	s := New()
	s.Put("k", "v1")
	prior, existed := s.Put("k", "v2")
	require.True(t, existed)
	require.Equal(t, "v1", prior)

	v, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestLastKey(t *testing.T) {
	s := New()
	_, ok := s.LastKey()
	require.False(t, ok)

	s.Put("m", "1")
	s.Put("z", "2")
	s.Put("a", "3")

	last, ok := s.LastKey()
	require.True(t, ok)
	require.Equal(t, "z", last)
}

func TestSplitMovesUpperHalf(t *testing.T) {
	s := New()
	for _, k := range []string{"a", "b", "c", "d"} {
		s.Put(k, k)
	}

	upper := s.Split()
	require.Equal(t, 2, s.Len())
	require.Equal(t, 2, upper.Len())

	last, ok := s.LastKey()
	require.True(t, ok)
	require.Equal(t, "b", last)

	upperLast, ok := upper.LastKey()
	require.True(t, ok)
	require.Equal(t, "d", upperLast)
}

func TestDeserializeRejectsBadPointerLength(t *testing.T) {
	s := New()
	s.Put("key", "value")
	buf := s.Serialize()
	buf = append(buf, 0x00, 0x03, 'x', 'y', 'z')

	_, err := Deserialize(buf)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestDeserializeRejectsUnknownEscapeCode(t *testing.T) {
	_, err := Deserialize([]byte{0x00, 0x09})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCorrupt)
}
