package gringottsdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionRoundTrip(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Build: 3}
	b := v.bytes()
	require.Equal(t, v, versionFromBytes(b[:]))
}

func TestVersionCompare(t *testing.T) {
	require.Equal(t, 0, Version{1, 0, 0}.Compare(Version{1, 0, 0}))
	require.Equal(t, -1, Version{1, 0, 0}.Compare(Version{1, 1, 0}))
	require.Equal(t, 1, Version{2, 0, 0}.Compare(Version{1, 9, 9}))
	require.Equal(t, -1, Version{1, 0, 0}.Compare(Version{1, 0, 1}))
}

func TestVersionString(t *testing.T) {
	require.Equal(t, "1.2.3", Version{1, 2, 3}.String())
}
