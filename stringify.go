// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package radix

import (
	"fmt"
	"io"
	"strings"
)

// String returns a hierarchical diagram of the tree, primarily useful
// for debugging and tests. If Dump returns an error, String panics.
func (t *Tree[V]) String() string {
	w := new(strings.Builder)
	if err := t.Dump(w); err != nil {
		panic(err)
	}
	return w.String()
}

// Dump writes a hierarchical diagram of the tree to w: one line per
// node, showing its discriminator bit, any netmasks propagated through
// it, and — for prefix-bearing nodes — the stored key bytes and the
// netmasks of its attached UserData tags.
func (t *Tree[V]) Dump(w io.Writer) error {
	if t.root == nil {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	return t.root.dump(w, "", true)
}

func (n *node[V]) dump(w io.Writer, pad string, last bool) error {
	glyph := "├─ "
	spacer := "│  "
	if last {
		glyph = "└─ "
		spacer = "   "
	}

	if _, err := fmt.Fprintf(w, "%s%sbit=%d%s\n", pad, glyph, n.bit, n.describe()); err != nil {
		return err
	}

	children := make([]*node[V], 0, 2)
	if n.left != nil {
		children = append(children, n.left)
	}
	if n.right != nil {
		children = append(children, n.right)
	}

	childPad := pad + spacer
	for i, c := range children {
		if err := c.dump(w, childPad, i == len(children)-1); err != nil {
			return err
		}
	}

	return nil
}

func (n *node[V]) describe() string {
	var b strings.Builder

	if nms := n.ascendingNetmasks(); len(nms) > 0 {
		fmt.Fprintf(&b, " propagates=%v", nms)
	}

	if n.prefix == nil {
		return b.String()
	}

	fmt.Fprintf(&b, " key=%x netmasks=[", n.prefix.stream)
	for ud := n.prefix.data; ud != nil; ud = ud.next {
		if ud != n.prefix.data {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", ud.netmask)
	}
	b.WriteByte(']')

	return b.String()
}
