// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command tdc compresses text with the textcomp coders and inspects the
// index structures they are built on.
//
// Example usage:
//	$ tdc compress --method esp -o book.tdc book.txt
//	$ tdc decompress -o book.txt book.tdc
//	$ tdc index --base 1 --find "the" book.txt
//	$ tdc bench --codecs lzw,esp,zstd --files gen:words --tests ratio
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tdc:", err)
		os.Exit(1)
	}
}
