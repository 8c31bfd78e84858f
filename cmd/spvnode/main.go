// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/toole-brendan/spv-node/node"
	"github.com/toole-brendan/spv-node/peer"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, params, err := node.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spvnode: %v\n", err)
		return 1
	}

	peer.WatchSignals()

	n, err := node.New(cfg, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spvnode: %v\n", err)
		return 1
	}
	defer n.Store().Close()

	if err := n.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "spvnode: %v\n", err)
		return 1
	}
	return 0
}
