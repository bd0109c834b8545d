package gringottsdb

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Gringotts is a handle to an open database file. It exclusively owns the
// underlying file descriptor for its lifetime; every read and write is
// preceded by an explicit seek (via ReadAt/WriteAt), so the handle never
// relies on the file's current offset being preserved across calls.
type Gringotts struct {
	path         string
	file         *os.File
	blockSizeKiB uint8
	logger       *zap.SugaredLogger
}

// Info reports a database's global metadata, as exposed by the info
// subcommand of the command-line front end.
type Info struct {
	Path         string
	Version      Version
	BlockSizeKiB uint8
	BlockCount   uint64
}

// Create opens path for read/write, creating it (failing if it already
// exists), writes a fresh header block, and allocates block 1 as the root.
func Create(path string, opts ...Option) (*Gringotts, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("gringottsdb: create %s: %w", path, err)
	}

	g := &Gringotts{path: path, file: file, blockSizeKiB: cfg.blockSizeKiB, logger: cfg.logger}
	if err := lockFile(file); err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}

	hb := newHeaderBlock(cfg.blockSizeKiB)
	if err := g.writeHeaderBlock(hb); err != nil {
		file.Close()
		return nil, err
	}

	root := newNodeBlock(1, g.blockSizeBytes())
	root.setBlockType(blockTypeRoot)
	if err := g.writeBlock(root); err != nil {
		file.Close()
		return nil, err
	}

	g.logger.Debugw("created database", "path", path, "blockSizeKiB", cfg.blockSizeKiB)
	return g, nil
}

// Open opens an existing database for read/write. The first bytes are
// compared against the magic string; a mismatch or short read is fatal.
func Open(path string, opts ...Option) (*Gringotts, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("gringottsdb: open %s: %w", path, err)
	}

	buf := make([]byte, headerBlockLen)
	if _, err := io.ReadFull(file, buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAGringottsDatabase, path, err)
	}
	hb, err := headerBlockFromBytes(buf)
	if err != nil {
		file.Close()
		return nil, err
	}

	g := &Gringotts{path: path, file: file, blockSizeKiB: hb.getBlockSizeKiB(), logger: cfg.logger}
	if err := lockFile(file); err != nil {
		file.Close()
		return nil, err
	}

	g.logger.Debugw("opened database", "path", path, "version", hb.getVersion().String())
	return g, nil
}

// Close releases the file handle, the last step of the handle's lifecycle.
func (g *Gringotts) Close() error {
	if err := unlockFile(g.file); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}

// Info reports the database's global metadata.
func (g *Gringotts) Info() (Info, error) {
	hb, err := g.readHeaderBlock()
	if err != nil {
		return Info{}, err
	}
	return Info{
		Path:         g.path,
		Version:      hb.getVersion(),
		BlockSizeKiB: hb.getBlockSizeKiB(),
		BlockCount:   hb.getNumberOfBlocks(),
	}, nil
}

// Get looks up key, descending the tree without creating any missing
// levels. It returns "" and a nil error if key is absent anywhere on the
// path.
func (g *Gringotts) Get(key string) (string, error) {
	return g.getVal(parseKeychain(key))
}

// Set installs value for key, creating any missing tree levels and
// splitting blocks as needed along the way.
func (g *Gringotts) Set(key, value string) error {
	return g.setVal(parseKeychain(key), value)
}

func (g *Gringotts) blockSizeBytes() int {
	return int(g.blockSizeKiB) * 1024
}

func (g *Gringotts) blockOffset(n uint64) int64 {
	return int64(headerBlockLen) + int64(n-1)*int64(g.blockSizeBytes())
}

func (g *Gringotts) readHeaderBlock() (*headerBlock, error) {
	buf := make([]byte, headerBlockLen)
	if _, err := g.file.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("gringottsdb: read header block: %w", err)
	}
	return headerBlockFromBytes(buf)
}

func (g *Gringotts) writeHeaderBlock(hb *headerBlock) error {
	if _, err := g.file.WriteAt(hb.serialize(), 0); err != nil {
		return fmt.Errorf("gringottsdb: write header block: %w", err)
	}
	return nil
}

// getBlock seeks to block n's offset, reads a full block, and deserializes
// it.
func (g *Gringotts) getBlock(n uint64) (*nodeBlock, error) {
	buf := make([]byte, g.blockSizeBytes())
	if _, err := g.file.ReadAt(buf, g.blockOffset(n)); err != nil {
		return nil, fmt.Errorf("gringottsdb: read block %d: %w", n, err)
	}
	g.logger.Debugw("read block", "block", n)
	return nodeBlockFromBytes(n, buf, g.blockSizeBytes())
}

// writeBlock seeks to the block's offset and writes its serialized bytes.
func (g *Gringotts) writeBlock(b *nodeBlock) error {
	if _, err := g.file.WriteAt(b.serialize(), g.blockOffset(b.number)); err != nil {
		return fmt.Errorf("gringottsdb: write block %d: %w", b.number, err)
	}
	g.logger.Debugw("wrote block", "block", b.number)
	return nil
}

// newBlock reads the current block count from the header, constructs an
// empty node block numbered one past it, writes it, and bumps the header's
// count.
func (g *Gringotts) newBlock() (*nodeBlock, error) {
	hb, err := g.readHeaderBlock()
	if err != nil {
		return nil, err
	}
	num := hb.getNumberOfBlocks() + 1
	nb := newNodeBlock(num, g.blockSizeBytes())
	if err := g.writeBlock(nb); err != nil {
		return nil, err
	}
	hb.setNumberOfBlocks(num)
	if err := g.writeHeaderBlock(hb); err != nil {
		return nil, err
	}
	g.logger.Debugw("allocated block", "block", num)
	return nb, nil
}
