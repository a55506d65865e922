// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

// Package radix provides a binary (bit-level) Patricia trie specialized
// for longest-prefix matching on fixed-width keys.
//
// The primary use case is IP-address classification: IPv4 (32-bit) and
// IPv6 (128-bit) addresses and netblocks, as used by an intrusion
// detection engine to tag hosts and netblocks with rule-matching data.
// Generic byte-string keys of any multiple-of-eight bit length are also
// supported.
//
// Each stored node may carry more than one netmask-tagged payload, so a
// single address can simultaneously represent an exact host entry and
// one or more enclosing netblocks. An ascending, per-node set of
// "propagated" netmasks is threaded through interior nodes so that a
// best-match lookup can climb from a failed exact match to the nearest
// enclosing netblock without rescanning the whole tree.
//
// The trie supports insertion, removal, exact-match lookup and
// best-match (longest-prefix) lookup. It is not safe for concurrent
// mutation; callers needing concurrent access must provide their own
// synchronization.
package radix
