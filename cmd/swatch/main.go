// Swatch - reduce an image to a small colour palette
//
// Swatch reports the distinct colours of simple images exactly and clusters
// richer images with median-cut box splitting, mapping every pixel to a
// palette entry.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
