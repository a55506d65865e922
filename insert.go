// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package radix

import "github.com/bits-and-blooms/bitset"

// AddGeneric inserts a generic byte-string key of the given bit length,
// tagged with the sentinel "generic" netmask (spec.md §4.5,
// add_generic). bitlen must be a positive multiple of eight.
func (t *Tree[V]) AddGeneric(stream []byte, bitlen int, user V) (*Node[V], error) {
	n, err := t.addKey(stream, bitlen, genericNetmask, user)
	if err != nil {
		return nil, err
	}
	return &Node[V]{n: n}, nil
}

// addKey is the shared insertion procedure behind AddGeneric and the
// netip-based wrappers in ip.go (spec.md §4.5).
func (t *Tree[V]) addKey(stream []byte, bitlen int, netmask uint8, user V) (*node[V], error) {
	if bitlen <= 0 || bitlen%8 != 0 {
		return nil, ErrInvalidKey
	}
	if len(stream) < bitlen/8 {
		return nil, ErrInvalidKey
	}

	// 1. Canonicalize: work on a private copy so the caller's slice is
	// never mutated, then chop trailing host bits beyond netmask. chop
	// is naturally a no-op for a host netmask, since no byte boundary in
	// [0, bitlen) exceeds it. The generic sentinel is skipped explicitly:
	// for keys of 256 bits or more, chopping at 255 would clear bits.
	buf := make([]byte, bitlen/8)
	copy(buf, stream)
	if netmask != genericNetmask {
		chop(buf, int(netmask), bitlen)
	}

	// 2. Materialize a detached prefix holding the one new UserData tag.
	pfx := &prefix[V]{
		stream: buf,
		bitlen: bitlen,
		data:   insertUserData[V](nil, netmask, user),
	}

	// 3. Empty tree: the new leaf becomes the root.
	if t.root == nil {
		leaf := &node[V]{bit: bitlen, prefix: pfx, netmasks: bitset.New(0)}
		t.root = leaf
		if !isHostOrGeneric(netmask, bitlen) {
			leaf.addNetmask(netmask)
		}
		return leaf, nil
	}

	// 4. Descend until a child would be nil or we reach a prefix-bearing
	// node whose bit is not shorter than the key.
	n := t.root
	for n.bit < bitlen || n.prefix == nil {
		if bitlen < n.bit {
			if n.right == nil {
				break
			}
			n = n.right
			continue
		}
		if bitTest(buf, n.bit) {
			if n.right == nil {
				break
			}
			n = n.right
		} else {
			if n.left == nil {
				break
			}
			n = n.left
		}
	}
	bottomNode := n

	// 5. Find the divergence point between the key and the descendant's
	// stored prefix, clamped to the shorter of the two bit lengths.
	checkBit := n.bit
	if bitlen < checkBit {
		checkBit = bitlen
	}
	differBit := firstDiffer(buf, bottomNode.prefix.stream, checkBit)

	// 6. Climb to the attachment point.
	parent := n.parent
	for parent != nil && differBit <= parent.bit {
		n = parent
		parent = n.parent
	}
	anchor := n

	// 7. Case A: exact match already present in the tree.
	if differBit == bitlen && anchor.bit == bitlen {
		return t.addKeyExisting(anchor, buf, netmask, user)
	}

	// New leaf for the inserted key.
	leaf := &node[V]{bit: bitlen, prefix: pfx, netmasks: bitset.New(0)}

	if differBit == bitlen {
		// 8. Case B: the key is a strict prefix of anchor's key. leaf
		// becomes the ancestor of anchor; orientation is decided by
		// anchor's own bit at differBit, since the (shorter) key has no
		// bit there of its own.
		if bitTest(bottomNode.prefix.stream, differBit) {
			leaf.right = anchor
		} else {
			leaf.left = anchor
		}
		leaf.parent = anchor.parent
		t.replaceChild(anchor.parent, anchor, leaf)
		anchor.parent = leaf
	} else {
		// 9. Case C: general divergence. Splice in a prefix-less
		// intermediate node at differBit, partitioning anchor's
		// propagated netmasks between the two.
		inter := newInteriorNode[V](differBit)
		inter.parent = anchor.parent

		for _, m := range anchor.ascendingNetmasks() {
			if int(m) < differBit+1 {
				anchor.removeNetmask(m)
				inter.addNetmask(m)
			}
		}

		if bitTest(buf, differBit) {
			inter.left = anchor
			inter.right = leaf
		} else {
			inter.left = leaf
			inter.right = anchor
		}
		leaf.parent = inter
		t.replaceChild(anchor.parent, anchor, inter)
		anchor.parent = inter
	}

	// 10. Register a non-host netmask at the first ancestor still
	// inside the netblock.
	if !isHostOrGeneric(netmask, bitlen) {
		registerNetmask(leaf, netmask)
	}

	return leaf, nil
}

// addKeyExisting handles insertion Case A: the key already has an exact
// node in the tree.
func (t *Tree[V]) addKeyExisting(anchor *node[V], buf []byte, netmask uint8, user V) (*node[V], error) {
	if anchor.prefix == nil {
		// The node was purely interior; it now gains a host entry. The
		// original and spec.md both attach it under the generic
		// sentinel rather than the netmask that was actually requested.
		newPfx, err := newPrefix[V](buf, anchor.bit, genericNetmask, user)
		if err != nil {
			return nil, err
		}
		anchor.prefix = newPfx
		return anchor, nil
	}

	if anchor.prefix.containsNetmask(netmask) {
		// Duplicate (prefix, netmask) pair: silently idempotent.
		return anchor, nil
	}

	anchor.prefix.addNetmask(netmask, user)

	if isHostOrGeneric(netmask, anchor.bit) {
		return anchor, nil
	}

	registerNetmask(anchor, netmask)

	return anchor, nil
}

// registerNetmask walks up from start (inclusive) to the first ancestor
// whose bit is less than netmask, and registers netmask on the node
// just below that boundary (spec.md §4.5 step 10).
func registerNetmask[V any](start *node[V], netmask uint8) {
	n := start
	parent := start.parent
	for parent != nil && int(netmask) < parent.bit+1 {
		n = parent
		parent = n.parent
	}
	n.addNetmask(netmask)
}
