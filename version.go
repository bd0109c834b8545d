package gringottsdb

import (
	"fmt"

	"gringottsdb/internal/buf"
)

// versionByteLen is the on-disk size of a Version: three uint16 fields.
const versionByteLen = 6

// CurrentVersion is written into every header block created by Create.
var CurrentVersion = Version{Major: 1, Minor: 0, Build: 0}

// Version is three little-endian uint16 fields, totally ordered
// lexicographically (Major, then Minor, then Build).
type Version struct {
	Major uint16
	Minor uint16
	Build uint16
}

// versionFromBytes decodes a 6-byte little-endian Version. The caller must
// ensure len(b) >= versionByteLen.
func versionFromBytes(b []byte) Version {
	return Version{
		Major: buf.U16LE(b[0:2]),
		Minor: buf.U16LE(b[2:4]),
		Build: buf.U16LE(b[4:6]),
	}
}

// bytes encodes v as 6 little-endian bytes.
func (v Version) bytes() [versionByteLen]byte {
	var out [versionByteLen]byte
	major := buf.PutU16LE(v.Major)
	minor := buf.PutU16LE(v.Minor)
	build := buf.PutU16LE(v.Build)
	copy(out[0:2], major[:])
	copy(out[2:4], minor[:])
	copy(out[4:6], build[:])
	return out
}

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than
// other, comparing Major, then Minor, then Build.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpUint16(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpUint16(v.Minor, other.Minor)
	default:
		return cmpUint16(v.Build, other.Build)
	}
}

func cmpUint16(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the version as "major.minor.build".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}
