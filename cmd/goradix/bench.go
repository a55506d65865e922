// Copyright (c) 2025 OISF
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand"
	"net/netip"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var benchIterations int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Load --routes and time repeated best-match lookups against random probes",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 1_000_000, "number of lookups to perform")
}

func runBench(_ *cobra.Command, _ []string) error {
	if routeFile == "" {
		return fmt.Errorf("--routes is required")
	}

	tree, err := loadRoutes(routeFile)
	if err != nil {
		return err
	}
	defer tree.Release()

	probes := make([]netip.Addr, 16)
	for i := range probes {
		probes[i] = randomProbeAddr()
	}

	start := time.Now()
	var hits int
	for i := 0; i < benchIterations; i++ {
		if _, _, ok := tree.FindIPv4BestMatch(probes[i&15]); ok {
			hits++
		}
	}
	elapsed := time.Since(start)

	log.Infof("bench: %d lookups in %s (%.0f ops/sec, %d hits)",
		benchIterations, elapsed, float64(benchIterations)/elapsed.Seconds(), hits)
	return nil
}

// randomProbeAddr returns a uniformly random IPv4 address, in the
// manner of bart/cmd/main.go's own probe generator.
func randomProbeAddr() netip.Addr {
	var b [4]byte
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	return netip.AddrFrom4(b)
}
