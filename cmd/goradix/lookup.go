// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"
)

var exactMatch bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Look up an IPv4/IPv6 address against --routes",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&exactMatch, "exact", false, "require an exact host match instead of best-match")
}

func runLookup(_ *cobra.Command, args []string) error {
	if routeFile == "" {
		return fmt.Errorf("--routes is required")
	}

	addr, err := netip.ParseAddr(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", args[0], err)
	}

	tree, err := loadRoutes(routeFile)
	if err != nil {
		return err
	}
	defer tree.Release()

	var (
		tag string
		ok  bool
	)
	switch {
	case addr.Is4() && exactMatch:
		tag, _, ok = tree.FindIPv4ExactMatch(addr)
	case addr.Is4():
		tag, _, ok = tree.FindIPv4BestMatch(addr)
	case exactMatch:
		tag, _, ok = tree.FindIPv6ExactMatch(addr)
	default:
		tag, _, ok = tree.FindIPv6BestMatch(addr)
	}

	if !ok {
		fmt.Println("no match")
		return nil
	}

	fmt.Printf("%s -> %s\n", addr, tag)
	return nil
}
