// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oisf/goradix"
)

// loadRoutes reads a text file of "<CIDR-or-address> <tag>" lines,
// one entry per line, blank lines and lines starting with '#' skipped,
// and inserts each into a fresh tree.
func loadRoutes(path string) (*radix.Tree[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree := radix.NewTree[string](nil)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			log.Warnf("routes file %s:%d: expected \"<cidr> <tag>\", got %q", path, lineNo, line)
			continue
		}

		if err := insertRoute(tree, fields[0], fields[1]); err != nil {
			log.Warnf("routes file %s:%d: %v", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tree, nil
}

func insertRoute(tree *radix.Tree[string], key, tag string) error {
	if pfx, err := netip.ParsePrefix(key); err == nil {
		if pfx.Addr().Is4() {
			_, err := tree.AddIPv4Net(pfx, tag)
			return err
		}
		_, err := tree.AddIPv6Net(pfx, tag)
		return err
	}

	addr, err := netip.ParseAddr(key)
	if err != nil {
		return fmt.Errorf("not a valid address or CIDR: %q", key)
	}
	if addr.Is4() {
		_, err := tree.AddIPv4(addr, tag)
		return err
	}
	_, err = tree.AddIPv6(addr, tag)
	return err
}
