package gringottsdb

import "fmt"

// walkRight walks the right-sibling chain starting at start, returning the
// first block whose last key is >= target. If the chain ends before such a
// block is found, the rightmost block in the chain is returned instead.
func (g *Gringotts) walkRight(start *nodeBlock, target string) (*nodeBlock, error) {
	current := start
	for {
		g.logger.Debugw("checking block", "block", current.number, "key", target)
		if lastKey, ok := current.getLastKey(); ok && lastKey >= target {
			return current, nil
		}
		next, ok := current.getRightBlock()
		if !ok {
			return current, nil
		}
		nb, err := g.getBlock(next)
		if err != nil {
			return nil, err
		}
		current = nb
	}
}

// descend walks a keychain's path segments, descending one tree level per
// segment starting from the root. With createPath false, a missing
// reference at any step reports ok=false. With createPath true, a missing
// reference allocates a new level on demand.
func (g *Gringotts) descend(path []string, createPath bool) (*nodeBlock, bool, error) {
	current, err := g.getBlock(1)
	if err != nil {
		return nil, false, err
	}

	for _, segment := range path {
		located, err := g.walkRight(current, segment)
		if err != nil {
			return nil, false, err
		}

		if ref, ok := located.getBlockRef(segment); ok {
			next, err := g.getBlock(ref)
			if err != nil {
				return nil, false, err
			}
			current = next
			continue
		}

		if !createPath {
			return nil, false, nil
		}

		child, err := g.newBlock()
		if err != nil {
			return nil, false, err
		}

		// Quirk preserved from the reference implementation: allocating a
		// new child level unconditionally resets the type of the block
		// that now holds the reference to it to "root", even for blocks
		// that aren't the tree root. This is documented as a deliberate
		// compatibility decision, not fixed silently.
		located.setBlockType(blockTypeRoot)

		if _, err := g.applyWithSplit(located, segment, func(b *nodeBlock) error {
			_, _, err := b.setBlockRef(segment, child.number)
			return err
		}); err != nil {
			return nil, false, err
		}

		current = child
	}

	return current, true, nil
}

// getVal descends without creating missing levels; a missing level or a
// missing leaf both report an absent value with no error.
func (g *Gringotts) getVal(kc keychain) (string, error) {
	level, ok, err := g.descend(kc.path, false)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	located, err := g.walkRight(level, kc.leaf)
	if err != nil {
		return "", err
	}

	value, _ := located.get(kc.leaf)
	return value, nil
}

// setVal descends creating missing levels, walks right to the block that
// should own the leaf key, and installs the value there, splitting if
// necessary.
func (g *Gringotts) setVal(kc keychain, value string) error {
	level, _, err := g.descend(kc.path, true)
	if err != nil {
		return err
	}

	located, err := g.walkRight(level, kc.leaf)
	if err != nil {
		return err
	}

	_, err = g.applyWithSplit(located, kc.leaf, func(b *nodeBlock) error {
		_, _, err := b.set(kc.leaf, value)
		return err
	})
	return err
}

// mutator attempts a capacity-checked mutation on a block, reporting
// errNoRoom if it doesn't fit.
type mutator func(b *nodeBlock) error

// applyWithSplit runs apply against located. If apply reports errNoRoom,
// located is split and apply is retried against whichever of the two
// resulting blocks should own targetKey, decided by comparing targetKey
// against located's last key after the split. Both affected blocks are
// written to disk; applyWithSplit returns whichever block ultimately
// accepted the mutation. If the retry still reports errNoRoom, the record
// itself is too large to fit in an empty block, and ErrRecordTooLarge is
// returned instead of leaking the internal sentinel.
func (g *Gringotts) applyWithSplit(located *nodeBlock, targetKey string, apply mutator) (*nodeBlock, error) {
	if err := apply(located); err == nil {
		return located, g.writeBlock(located)
	} else if err != errNoRoom {
		return nil, err
	}

	right, err := g.splitBlock(located)
	if err != nil {
		return nil, err
	}

	dest := located
	if lastKey, ok := located.getLastKey(); ok && targetKey > lastKey {
		dest = right
	}
	if err := apply(dest); err == errNoRoom {
		return nil, fmt.Errorf("%w: key %q", ErrRecordTooLarge, targetKey)
	} else if err != nil {
		return nil, err
	}
	if err := g.writeBlock(located); err != nil {
		return nil, err
	}
	if err := g.writeBlock(right); err != nil {
		return nil, err
	}
	return dest, nil
}

// splitBlock extracts the upper half of current's entries into a new
// right-sibling block via newBlock, and links it into the right-sibling
// chain.
//
// Decision: if current already had a right sibling, the new block
// splices in ahead of it (inherits the old successor) rather than
// dropping the old link, even though at least one revision of the
// reference implementation drops it when a block with an existing
// successor is split. Silently losing part of a level's chain on every
// subsequent split of an already-split level is a correctness bug, not a
// quirk worth preserving, so this implementation always splices.
func (g *Gringotts) splitBlock(current *nodeBlock) (*nodeBlock, error) {
	upper := current.split()

	right, err := g.newBlock()
	if err != nil {
		return nil, err
	}
	right.setKVSet(upper)

	if oldNext, hadNext := current.getRightBlock(); hadNext {
		right.setRightBlock(oldNext)
	}
	current.setRightBlock(right.number)

	if err := g.writeBlock(current); err != nil {
		return nil, err
	}
	if err := g.writeBlock(right); err != nil {
		return nil, err
	}

	return right, nil
}
