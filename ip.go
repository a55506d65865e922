// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package radix

import "net/netip"

const (
	ipv4Bits = 32
	ipv6Bits = 128
)

// AddIPv4 inserts a single IPv4 host address. addr must be a 4-byte
// address; Is4In6 addresses are unwrapped automatically (spec.md §6,
// add IPv4).
func (t *Tree[V]) AddIPv4(addr netip.Addr, user V) (*Node[V], error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return nil, ErrInvalidKey
	}
	b := addr.As4()
	n, err := t.addKey(b[:], ipv4Bits, ipv4Bits, user)
	if err != nil {
		return nil, err
	}
	return &Node[V]{n: n}, nil
}

// AddIPv6 inserts a single IPv6 host address.
func (t *Tree[V]) AddIPv6(addr netip.Addr, user V) (*Node[V], error) {
	if !addr.Is6() || addr.Is4In6() {
		return nil, ErrInvalidKey
	}
	b := addr.As16()
	n, err := t.addKey(b[:], ipv6Bits, ipv6Bits, user)
	if err != nil {
		return nil, err
	}
	return &Node[V]{n: n}, nil
}

// AddIPv4Net inserts an IPv4 netblock. pfx.Bits() is the netmask; the
// full 32-bit address is still the key's bit length (spec.md §6, add
// IPv4 netblock).
func (t *Tree[V]) AddIPv4Net(pfx netip.Prefix, user V) (*Node[V], error) {
	addr := pfx.Addr().Unmap()
	if !addr.Is4() || pfx.Bits() < 0 || pfx.Bits() > ipv4Bits {
		return nil, ErrInvalidKey
	}
	b := addr.As4()
	n, err := t.addKey(b[:], ipv4Bits, uint8(pfx.Bits()), user)
	if err != nil {
		return nil, err
	}
	return &Node[V]{n: n}, nil
}

// AddIPv6Net inserts an IPv6 netblock.
func (t *Tree[V]) AddIPv6Net(pfx netip.Prefix, user V) (*Node[V], error) {
	addr := pfx.Addr()
	if !addr.Is6() || addr.Is4In6() || pfx.Bits() < 0 || pfx.Bits() > ipv6Bits {
		return nil, ErrInvalidKey
	}
	b := addr.As16()
	n, err := t.addKey(b[:], ipv6Bits, uint8(pfx.Bits()), user)
	if err != nil {
		return nil, err
	}
	return &Node[V]{n: n}, nil
}

// RemoveIPv4 removes a single IPv4 host address. A no-op if absent.
func (t *Tree[V]) RemoveIPv4(addr netip.Addr) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return
	}
	b := addr.As4()
	t.removeKey(b[:], ipv4Bits, ipv4Bits)
}

// RemoveIPv6 removes a single IPv6 host address. A no-op if absent.
func (t *Tree[V]) RemoveIPv6(addr netip.Addr) {
	if !addr.Is6() || addr.Is4In6() {
		return
	}
	b := addr.As16()
	t.removeKey(b[:], ipv6Bits, ipv6Bits)
}

// RemoveIPv4Net removes an IPv4 netblock entry. A no-op if absent. The
// address is canonicalized against pfx.Bits() the same way AddIPv4Net
// canonicalizes it, so host bits set in pfx are ignored (spec.md §4.6).
func (t *Tree[V]) RemoveIPv4Net(pfx netip.Prefix) {
	addr := pfx.Addr().Unmap()
	if !addr.Is4() || pfx.Bits() < 0 || pfx.Bits() > ipv4Bits {
		return
	}
	b := addr.As4()
	t.removeKey(b[:], ipv4Bits, uint8(pfx.Bits()))
}

// RemoveIPv6Net removes an IPv6 netblock entry. A no-op if absent. Host
// bits set in pfx are ignored, as documented on RemoveIPv4Net.
func (t *Tree[V]) RemoveIPv6Net(pfx netip.Prefix) {
	addr := pfx.Addr()
	if !addr.Is6() || addr.Is4In6() || pfx.Bits() < 0 || pfx.Bits() > ipv6Bits {
		return
	}
	b := addr.As16()
	t.removeKey(b[:], ipv6Bits, uint8(pfx.Bits()))
}

// FindIPv4ExactMatch looks up addr as a host entry: it matches only an
// identical host insertion, never a containing netblock.
func (t *Tree[V]) FindIPv4ExactMatch(addr netip.Addr) (user V, handle *Node[V], ok bool) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return user, nil, false
	}
	b := addr.As4()
	return t.findKey(b[:], ipv4Bits, true)
}

// FindIPv6ExactMatch looks up addr as an IPv6 host entry.
func (t *Tree[V]) FindIPv6ExactMatch(addr netip.Addr) (user V, handle *Node[V], ok bool) {
	if !addr.Is6() || addr.Is4In6() {
		return user, nil, false
	}
	b := addr.As16()
	return t.findKey(b[:], ipv6Bits, true)
}

// FindIPv4BestMatch looks up addr, preferring an exact host entry and
// falling back to the longest containing netblock (spec.md §4.7).
func (t *Tree[V]) FindIPv4BestMatch(addr netip.Addr) (user V, handle *Node[V], ok bool) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return user, nil, false
	}
	b := addr.As4()
	return t.findKey(b[:], ipv4Bits, false)
}

// FindIPv6BestMatch looks up addr, preferring an exact host entry and
// falling back to the longest containing netblock.
func (t *Tree[V]) FindIPv6BestMatch(addr netip.Addr) (user V, handle *Node[V], ok bool) {
	if !addr.Is6() || addr.Is4In6() {
		return user, nil, false
	}
	b := addr.As16()
	return t.findKey(b[:], ipv6Bits, false)
}
