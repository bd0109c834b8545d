package gringottsdb

import "gringottsdb/internal/buf"

// magicString identifies the file as a gringotts database. It is written
// verbatim as the first 65 bytes of a freshly created file.
const magicString = "GringottsDBFile - https://github.com/JonathonRichardson/gringotts"

// defaultBlockSizeKiB is the block size used by Create when the caller
// doesn't override it with WithBlockSizeKiB.
const defaultBlockSizeKiB = 4

// Field layout of the header block's 256-byte region. This overlays the
// same byte range as blockHeader's generic fields, but with an entirely
// different table — the header block is a distinct logical type that
// happens to share the first 256 bytes of the file with the generic block
// model's header-region convention.
const (
	offMagic       = 0
	lenMagic       = 65
	offVersion     = 65
	lenVersion     = versionByteLen
	offBlockSize   = 71
	lenBlockSize   = 1
	offBlockCount  = 72
	lenBlockCount  = 8
	headerBlockLen = headerRegionSize
)

// headerBlock is the distinguished block at file offset 0: magic string,
// format version, block size, and the monotonic block-count allocator
// cursor.
type headerBlock struct {
	raw []byte
}

// newHeaderBlock builds a fresh header block for Create: magic string,
// CurrentVersion, the given block size, and a block count of 1 (the root
// block allocated alongside it).
func newHeaderBlock(blockSizeKiB uint8) *headerBlock {
	h := &headerBlock{raw: make([]byte, headerBlockLen)}
	writeSection(&h.raw, offMagic, lenMagic, []byte(magicString))
	h.setVersion(CurrentVersion)
	h.setBlockSizeKiB(blockSizeKiB)
	h.setNumberOfBlocks(1)
	return h
}

// headerBlockFromBytes parses a header block out of the first bytes of the
// file. b is not retained.
func headerBlockFromBytes(b []byte) (*headerBlock, error) {
	if len(b) < lenMagic || string(b[offMagic:offMagic+lenMagic]) != magicString {
		return nil, ErrNotAGringottsDatabase
	}
	h := &headerBlock{raw: make([]byte, headerBlockLen)}
	copy(h.raw, readSection(b, 0, headerBlockLen))
	return h, nil
}

func (h *headerBlock) getVersion() Version {
	return versionFromBytes(readSection(h.raw, offVersion, lenVersion))
}

func (h *headerBlock) setVersion(v Version) {
	b := v.bytes()
	writeSection(&h.raw, offVersion, lenVersion, b[:])
}

func (h *headerBlock) getBlockSizeKiB() uint8 {
	return readSection(h.raw, offBlockSize, lenBlockSize)[0]
}

func (h *headerBlock) setBlockSizeKiB(kib uint8) {
	writeSection(&h.raw, offBlockSize, lenBlockSize, []byte{kib})
}

func (h *headerBlock) blockSizeBytes() int {
	return int(h.getBlockSizeKiB()) * 1024
}

func (h *headerBlock) getNumberOfBlocks() uint64 {
	return buf.U64LE(readSection(h.raw, offBlockCount, lenBlockCount))
}

func (h *headerBlock) setNumberOfBlocks(n uint64) {
	b := buf.PutU64LE(n)
	writeSection(&h.raw, offBlockCount, lenBlockCount, b[:])
}

// serialize renders the header block as exactly 256 bytes.
func (h *headerBlock) serialize() []byte {
	growBuffer(&h.raw, headerBlockLen)
	out := make([]byte, headerBlockLen)
	copy(out, h.raw[:headerBlockLen])
	return out
}
