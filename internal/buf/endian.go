// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// PutU16LE encodes v as 2 little-endian bytes.
func PutU16LE(v uint16) [2]byte {
	var out [2]byte
	binary.LittleEndian.PutUint16(out[:], v)
	return out
}

// PutU32LE encodes v as 4 little-endian bytes.
func PutU32LE(v uint32) [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], v)
	return out
}

// PutU64LE encodes v as 8 little-endian bytes.
func PutU64LE(v uint64) [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], v)
	return out
}
