// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package radix

import "bytes"

// FindGeneric looks up a generic byte-string key, inserted under the
// sentinel "generic" netmask. Only exact matches are meaningful for
// generic keys; there is no netblock concept outside IP addresses
// (spec.md §4.7).
func (t *Tree[V]) FindGeneric(stream []byte, bitlen int) (user V, handle *Node[V], ok bool) {
	return t.findKey(stream, bitlen, true)
}

// findKey is the shared lookup procedure. exactOnly disables the
// netblock-search fallback used by IP best-match lookups in ip.go.
func (t *Tree[V]) findKey(stream []byte, bitlen int, exactOnly bool) (user V, handle *Node[V], ok bool) {
	if bitlen <= 0 || bitlen%8 != 0 || len(stream) < bitlen/8 || t.root == nil {
		return user, nil, false
	}

	buf := make([]byte, bitlen/8)
	copy(buf, stream)

	n := t.root
	for n.bit < bitlen {
		if bitTest(buf, n.bit) {
			if n.right == nil {
				return user, nil, false
			}
			n = n.right
		} else {
			if n.left == nil {
				return user, nil, false
			}
			n = n.left
		}
	}

	if n.bit == bitlen && n.prefix != nil && bytes.Equal(n.prefix.stream, buf) {
		if v, found := n.prefix.lookupAndSelectUser(bitlen, true); found {
			return v, &Node[V]{n: n}, true
		}
	}

	if exactOnly {
		return user, nil, false
	}

	return t.findNetblock(buf, bitlen, n)
}

// findNetblock implements the netblock search of spec.md §4.7: climb
// from start to the nearest ancestor with a non-empty propagation set,
// try every netmask registered there independently, largest first (each
// re-descending fresh from that ancestor against a freshly chopped copy
// of the query, and accepting only the payload stored under that very
// netmask), and on total failure continue climbing from that ancestor's
// parent. Netmasks on deeper ancestors are larger, so the first hit is
// the longest containing netblock. Terminates with no match once the
// climb exhausts the root.
func (t *Tree[V]) findNetblock(buf []byte, bitlen int, start *node[V]) (user V, handle *Node[V], ok bool) {
	clipped := make([]byte, len(buf))

	for anc := start; anc != nil; anc = anc.parent {
		if !anc.hasAnyNetmask() {
			continue
		}

		nms := anc.ascendingNetmasks()
		for i := len(nms) - 1; i >= 0; i-- {
			m := nms[i]
			copy(clipped, buf)
			chop(clipped, int(m), bitlen)

			cand := anc
			for cand.bit < bitlen {
				var next *node[V]
				if bitTest(clipped, cand.bit) {
					next = cand.right
				} else {
					next = cand.left
				}
				if next == nil {
					cand = nil
					break
				}
				cand = next
			}

			if cand == nil || cand.bit != bitlen || cand.prefix == nil {
				continue
			}
			if !bytes.Equal(cand.prefix.stream, clipped) {
				continue
			}
			for ud := cand.prefix.data; ud != nil; ud = ud.next {
				if ud.netmask == m {
					return ud.user, &Node[V]{n: cand}, true
				}
			}
		}
	}

	return user, nil, false
}
