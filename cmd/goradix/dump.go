// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Load --routes and print the resulting trie structure",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

func runDump(_ *cobra.Command, _ []string) error {
	if routeFile == "" {
		return fmt.Errorf("--routes is required")
	}

	tree, err := loadRoutes(routeFile)
	if err != nil {
		return err
	}
	defer tree.Release()

	return tree.Dump(os.Stdout)
}
