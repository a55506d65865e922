// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package radix

import (
	"math/rand"
	"net/netip"
	"testing"
)

// firstLeafPrefix descends always-left (or always-right) from n until it
// finds a node carrying a prefix, for use as a representative stored key
// under a subtree.
func firstLeafPrefix[V any](n *node[V]) *prefix[V] {
	for n != nil {
		if n.prefix != nil {
			return n.prefix
		}
		if n.left != nil {
			n = n.left
		} else {
			n = n.right
		}
	}
	return nil
}

// checkShapeInvariant walks the tree verifying that every two-child
// interior node's bit equals the first differing bit between a
// representative stored prefix from each of its subtrees (spec.md §8,
// universal invariant 1).
func checkShapeInvariant[V any](t *testing.T, n *node[V]) {
	t.Helper()
	if n == nil {
		return
	}

	if n.left != nil && n.right != nil {
		lp := firstLeafPrefix(n.left)
		rp := firstLeafPrefix(n.right)
		if lp != nil && rp != nil {
			limit := n.bit + 1
			if lp.bitlen < limit {
				limit = lp.bitlen
			}
			if rp.bitlen < limit {
				limit = rp.bitlen
			}
			got := firstDiffer(lp.stream, rp.stream, limit)
			if got != n.bit {
				t.Errorf("node bit=%d: representative subtree keys differ at bit %d", n.bit, got)
			}
		}
	}

	checkShapeInvariant(t, n.left)
	checkShapeInvariant(t, n.right)
}

// expectedNetmaskNode replays the climb registerNetmask performs at
// insertion time (insert.go) to find the single node that is supposed
// to carry netmask for the key rooted at leaf n: the node just below
// the highest ancestor boundary whose bit is still less than netmask.
func expectedNetmaskNode[V any](n *node[V], netmask uint8) *node[V] {
	cur := n
	parent := n.parent
	for parent != nil && int(netmask) < parent.bit+1 {
		cur = parent
		parent = cur.parent
	}
	return cur
}

// checkPropagationInvariant verifies that every non-host netmask on a
// stored prefix appears on exactly the ancestor node the insertion
// algorithm's climb designates for it (spec.md §8, universal invariant
// 2), not merely on some unique-but-possibly-wrong node on the
// root-to-prefix path.
func checkPropagationInvariant[V any](t *testing.T, n *node[V]) {
	t.Helper()
	if n == nil {
		return
	}

	if n.prefix != nil {
		for ud := n.prefix.data; ud != nil; ud = ud.next {
			if isHostOrGeneric(ud.netmask, n.prefix.bitlen) {
				continue
			}

			want := expectedNetmaskNode(n, ud.netmask)
			if !want.hasNetmask(ud.netmask) {
				t.Errorf("netmask %d for key %x: not registered on the designated ancestor (bit=%d)", ud.netmask, n.prefix.stream, want.bit)
			}

			count := 0
			for anc := n; anc != nil; anc = anc.parent {
				if anc.hasNetmask(ud.netmask) {
					count++
				}
			}
			if count != 1 {
				t.Errorf("netmask %d for key %x: found on %d ancestors, want 1", ud.netmask, n.prefix.stream, count)
			}
		}
	}

	checkPropagationInvariant(t, n.left)
	checkPropagationInvariant(t, n.right)
}

func TestShapeInvariantUnderRandomInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := NewTree[int](nil)

	for i := 0; i < 500; i++ {
		key := []byte{byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))}
		if _, err := tree.AddGeneric(key, 32, i); err != nil {
			t.Fatalf("AddGeneric: %v", err)
		}
	}

	checkShapeInvariant[int](t, tree.root)
}

func TestPropagationInvariantUnderRandomNetblocks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	tree := NewTree[string](nil)

	for i := 0; i < 300; i++ {
		bits := rng.Intn(25) // 0..24, avoid host-only noise
		addr := netip.AddrFrom4([4]byte{byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))})
		pfx := netip.PrefixFrom(addr, bits).Masked()
		if _, err := tree.AddIPv4Net(pfx, "x"); err != nil {
			t.Fatalf("AddIPv4Net: %v", err)
		}
	}

	checkPropagationInvariant[string](t, tree.root)
}

// netEntry pairs a netip.Prefix with the value it was inserted under,
// for oracle comparison against the tree's own best-match result.
type netEntry struct {
	pfx netip.Prefix
	val int
}

// bestMatchOracle linear-scans entries for the value stored under the
// longest prefix that contains addr, independent of any tree
// structure. Ties are broken by keeping the first-seen longest match,
// which is unambiguous for this test's randomly generated corpus.
func bestMatchOracle(entries []netEntry, addr netip.Addr) (int, bool) {
	best, ok := netEntry{}, false
	for _, e := range entries {
		if e.pfx.Contains(addr) && (!ok || e.pfx.Bits() > best.pfx.Bits()) {
			best, ok = e, true
		}
	}
	return best.val, ok
}

// TestBestMatchAgainstOracleWithDivergentHostAndNetblock inserts a host
// and an enclosing netblock that diverge onto different branches of a
// shared ancestor (the shape of spec.md §8 scenario 4), then checks
// FindIPv4BestMatch for many queries against a linear-scan oracle. This
// is independent of internal node layout, so it catches a netmask
// misrouted to the wrong node during a Case C split even when it still
// ends up unique on some ancestor.
func TestBestMatchAgainstOracleWithDivergentHostAndNetblock(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tree := NewTree[int](nil)
	var entries []netEntry

	for i := 0; i < 400; i++ {
		bits := rng.Intn(33) // 0..32, including host-width entries
		addr := netip.AddrFrom4([4]byte{byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))})
		pfx := netip.PrefixFrom(addr, bits).Masked()

		if _, err := tree.AddIPv4Net(pfx, i); err != nil {
			t.Fatalf("AddIPv4Net(%s): %v", pfx, err)
		}
		entries = append(entries, netEntry{pfx, i})
	}

	// Force the exact scenario-4 shape: a /24 netblock and a distinct
	// host address inside it that diverge in their low-order bits, so
	// the Case C split partitions the /24's netmask between the new
	// interior node and the displaced anchor.
	netPfx := netip.MustParsePrefix("192.171.128.0/24")
	hostAddr := netip.MustParseAddr("192.171.128.53")
	if _, err := tree.AddIPv4Net(netPfx, 1000); err != nil {
		t.Fatalf("AddIPv4Net: %v", err)
	}
	if _, err := tree.AddIPv4(hostAddr, 2000); err != nil {
		t.Fatalf("AddIPv4: %v", err)
	}
	entries = append(entries, netEntry{netPfx, 1000}, netEntry{netip.PrefixFrom(hostAddr, 32), 2000})

	for i := 0; i < 2000; i++ {
		addr := netip.AddrFrom4([4]byte{byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))})
		wantVal, wantOK := bestMatchOracle(entries, addr)

		gotVal, _, gotOK := tree.FindIPv4BestMatch(addr)
		if gotOK != wantOK {
			t.Fatalf("FindIPv4BestMatch(%s): ok=%v, want %v", addr, gotOK, wantOK)
		}
		if gotOK && gotVal != wantVal {
			t.Fatalf("FindIPv4BestMatch(%s): got value %d, oracle wants %d", addr, gotVal, wantVal)
		}
	}

	if v, _, ok := tree.FindIPv4BestMatch(netip.MustParseAddr("192.171.128.53")); !ok || v != 2000 {
		t.Fatalf("FindIPv4BestMatch(192.171.128.53): got %d, %v, want 2000 host match", v, ok)
	}
	if v, _, ok := tree.FindIPv4BestMatch(netip.MustParseAddr("192.171.128.200")); !ok || v != 1000 {
		t.Fatalf("FindIPv4BestMatch(192.171.128.200): got %d, %v, want 1000 enclosing /24 match", v, ok)
	}
}

func TestInsertRemoveRoundTripRestoresTree(t *testing.T) {
	tree := NewTree[int](nil)

	keys := [][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 9, 9, 9},
	}
	for i, k := range keys {
		if _, err := tree.AddGeneric(k, 32, i); err != nil {
			t.Fatalf("AddGeneric: %v", err)
		}
	}

	before := tree.String()

	newKey := []byte{255, 0, 128, 64}
	if _, err := tree.AddGeneric(newKey, 32, 100); err != nil {
		t.Fatalf("AddGeneric: %v", err)
	}
	tree.RemoveGeneric(newKey, 32)

	after := tree.String()
	if before != after {
		t.Fatalf("insert+remove round trip changed tree shape:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestCanonicalizedLookupAfterNetblockInsertWithHostBits(t *testing.T) {
	tree := NewTree[string](nil)

	// 192.171.128.45/24: the host bits (.45) are not all zero.
	dirty := netip.MustParseAddr("192.171.128.45")
	pfx := netip.PrefixFrom(dirty, 24)
	if _, err := tree.AddIPv4Net(pfx, "net24"); err != nil {
		t.Fatalf("AddIPv4Net: %v", err)
	}

	canonical := netip.MustParseAddr("192.171.128.0")
	if v, _, ok := tree.FindIPv4BestMatch(canonical); !ok || v != "net24" {
		t.Fatalf("lookup of canonicalized address: got %v, %v", v, ok)
	}
}
