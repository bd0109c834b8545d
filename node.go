package gringottsdb

import (
	"fmt"

	"gringottsdb/internal/buf"
	"gringottsdb/internal/kvset"
)

// nodeBlock is a header plus a KV-set body, capacity-capped by the owning
// database's configured block size. Reads and mutations go through its
// methods; the traversal layer never pokes at the header or the KV-set
// directly.
type nodeBlock struct {
	number   uint64
	header   *blockHeader
	body     *kvset.KVSet
	capacity int // block_size_kib * 1024, including the header region
}

func newNodeBlock(number uint64, capacity int) *nodeBlock {
	h := newBlockHeader()
	h.setBlockType(blockTypeNode)
	return &nodeBlock{
		number:   number,
		header:   h,
		body:     kvset.New(),
		capacity: capacity,
	}
}

// nodeBlockFromBytes deserializes a block previously written by
// serialize(), given its block number and the owning database's block
// size.
func nodeBlockFromBytes(number uint64, raw []byte, capacity int) (*nodeBlock, error) {
	h := blockHeaderFromBytes(raw)
	bodyLen := int(h.bodyLength())
	bodyBytes, ok := buf.Slice(raw, headerRegionSize, bodyLen)
	if !ok {
		return nil, newCorruptDataError(fmt.Sprintf("block %d: body length %d exceeds block size %d", number, bodyLen, len(raw)))
	}
	body, err := kvset.Deserialize(bodyBytes)
	if err != nil {
		return nil, wrapCorruptDataError(fmt.Sprintf("block %d", number), err)
	}
	return &nodeBlock{number: number, header: h, body: body, capacity: capacity}, nil
}

// set installs value for key. On success it returns the prior value (if
// any existed under any form). If the resulting serialization would
// overflow the block's capacity, the block is left exactly as it was
// before the call and errNoRoom is returned.
func (n *nodeBlock) set(key, value string) (string, bool, error) {
	clone := n.body.Clone()
	prior, existed := n.body.Put(key, value)
	if n.overflows() {
		n.body = clone
		return "", false, errNoRoom
	}
	return prior, existed, nil
}

// get performs a direct lookup.
func (n *nodeBlock) get(key string) (string, bool) {
	return n.body.Get(key)
}

// setBlockRef installs a block reference for key under the same capacity
// discipline as set.
func (n *nodeBlock) setBlockRef(key string, blockNum uint64) (uint64, bool, error) {
	clone := n.body.Clone()
	prior, existed := n.body.PutRef(key, blockNum)
	if n.overflows() {
		n.body = clone
		return 0, false, errNoRoom
	}
	return prior, existed, nil
}

// getBlockRef returns the block reference stored for key, if any.
func (n *nodeBlock) getBlockRef(key string) (uint64, bool) {
	return n.body.GetRef(key)
}

// getLastKey returns the maximum key currently present.
func (n *nodeBlock) getLastKey() (string, bool) {
	return n.body.LastKey()
}

// split extracts the upper half of n's entries into a fresh KV-set,
// leaving the lower half behind.
func (n *nodeBlock) split() *kvset.KVSet {
	return n.body.Split()
}

// setKVSet installs a KV-set wholesale, used by the split protocol to seed
// a new right sibling.
func (n *nodeBlock) setKVSet(s *kvset.KVSet) {
	n.body = s
}

func (n *nodeBlock) setRightBlock(num uint64) {
	n.header.setNextBlock(num)
}

func (n *nodeBlock) getRightBlock() (uint64, bool) {
	next := n.header.nextBlock()
	if next == 0 {
		return 0, false
	}
	return next, true
}

func (n *nodeBlock) setBlockType(t blockType) {
	n.header.setBlockType(t)
}

// overflows reports whether the block's current contents would exceed its
// configured capacity if serialized now.
func (n *nodeBlock) overflows() bool {
	return headerRegionSize+len(n.body.Serialize()) > n.capacity
}

// serialize emits header ∥ body, refreshing the body-length field and the
// sanity tag first.
func (n *nodeBlock) serialize() []byte {
	body := n.body.Serialize()
	n.header.setBodyLength(uint32(len(body)))
	n.header.setSanityTag()
	out := make([]byte, 0, n.capacity)
	out = append(out, n.header.bytes()...)
	out = append(out, body...)
	if len(out) < n.capacity {
		padded := make([]byte, n.capacity)
		copy(padded, out)
		out = padded
	}
	return out
}
