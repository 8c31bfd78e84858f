// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node wires the chain engine, header store, address manager,
// and peer session into a single running process, and exposes the
// read-only inspector feed and go-flags-driven configuration an operator
// uses to start one.
package node

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/toole-brendan/spv-node/addrmgr"
	"github.com/toole-brendan/spv-node/chain"
	"github.com/toole-brendan/spv-node/chaincfg"
	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
	"github.com/toole-brendan/spv-node/headerdb"
	"github.com/toole-brendan/spv-node/peer"
	"github.com/toole-brendan/spv-node/wire"
)

const headerDBDirname = "headers"

// Node owns the full set of long-lived subsystems for one running
// process: the header chain, its on-disk store, the address table, and
// the single managed peer session.
type Node struct {
	cfg    *Config
	params *chaincfg.Params

	store     *headerdb.Store
	chain     *chain.Chain
	addrs     *addrmgr.AddrManager
	inspector *Inspector

	// persistErr latches the first headerdb write failure reported by
	// onHeaderAdded. It is only ever touched from the goroutine driving
	// Run (the chain engine's callbacks fire synchronously out of
	// sess.Run, which Run calls directly), so no lock guards it.
	persistErr error
}

// New constructs a Node from cfg, opening the header store at
// cfg.DataDir/headers and wiring the chain engine's add/remove
// callbacks to both the store and the inspector feed.
func New(cfg *Config, params *chaincfg.Params) (*Node, error) {
	store, err := headerdb.Open(filepath.Join(cfg.DataDir, headerDBDirname))
	if err != nil {
		return nil, fmt.Errorf("node: opening header store: %w", err)
	}

	n := &Node{
		cfg:       cfg,
		params:    params,
		store:     store,
		addrs:     addrmgr.New(),
		inspector: NewInspector(),
	}

	n.chain = chain.New(params, n.onHeaderAdded, n.onHeaderRemoved)
	return n, nil
}

// onHeaderAdded is the chain engine's AddBlockFunc: it is the sole place
// an accepted header is committed to headerdb, so every path that adds a
// header — a direct insert, an orphan reconnected once its parent
// arrives, or a reorg's new-branch replay — persists uniformly. A write
// failure is latched on the node and surfaced by Run once the current
// session ends, per the store-error-aborts-and-surfaces policy.
func (n *Node) onHeaderAdded(hash chainhash.Hash, height int32, header wire.BlockHeader, txnCount uint32) {
	rec := headerdb.BlockHeaderRecord{
		Height:   uint32(height),
		TxnCount: txnCount,
		Header:   header,
	}
	if _, err := n.store.Put(hash, rec); err != nil && n.persistErr == nil {
		n.persistErr = fmt.Errorf("node: persisting header %s: %w", hash, err)
		nodeLog.Errorf("%v", n.persistErr)
	}
	n.inspector.Broadcast(headerAddedEvent(hash, height))
}

// onHeaderRemoved is the chain engine's RemoveBlockFunc, fired for each
// header a reorg detaches from the active chain. The record is
// deliberately left in headerdb rather than deleted: whether a header
// sits on the active branch is a property of the chain engine's current
// tip, not a durable fact the store needs to track (see DESIGN.md).
func (n *Node) onHeaderRemoved(hash chainhash.Hash, height int32) {
	n.inspector.Broadcast(headerRemovedEvent(hash, height))
}

// Store returns the node's header store.
func (n *Node) Store() *headerdb.Store { return n.store }

// Chain returns the node's header chain engine.
func (n *Node) Chain() *chain.Chain { return n.chain }

// Run connects to the configured peer, syncs headers, and serves the
// inspector feed (if enabled) until the session terminates or
// peer.RequestTerminate is called, reconnecting with a linear backoff up
// to cfg.MaxRetries consecutive failures.
func (n *Node) Run() error {
	if n.cfg.InspectorListen != "" {
		go n.serveInspector()
	}

	var attempts int
	for {
		sess := peer.New(peer.Config{
			Params:     n.params,
			Chain:      n.chain,
			Addrs:      n.addrs,
			Host:       n.cfg.FullNode,
			Port:       n.cfg.Port,
			ProxyAddr:  n.cfg.Proxy,
			MaxRetries: n.cfg.MaxRetries,
		})

		n.inspector.Broadcast(peerStateEvent(sess.State().String(), "connecting"))
		if err := sess.Connect(); err != nil {
			attempts++
			nodeLog.Warnf("connect attempt %d/%d failed: %v", attempts, n.cfg.MaxRetries, err)
			if attempts >= n.cfg.MaxRetries {
				return fmt.Errorf("node: exhausted %d connection attempts: %w", n.cfg.MaxRetries, err)
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}
		attempts = 0

		n.inspector.Broadcast(peerStateEvent(sess.State().String(), "handshake complete"))
		if err := sess.StartSync(); err != nil {
			nodeLog.Errorf("starting sync: %v", err)
			sess.Close()
			continue
		}

		runErr := sess.Run()
		sess.Close()
		n.inspector.Broadcast(peerStateEvent(peer.StateDisconnected.String(), fmt.Sprintf("%v", runErr)))

		if n.persistErr != nil {
			return n.persistErr
		}

		if sess.State() == peer.StateTerminating {
			return nil
		}
		nodeLog.Warnf("session ended: %v", runErr)
	}
}

func (n *Node) serveInspector() {
	mux := http.NewServeMux()
	mux.Handle("/", n.inspector)
	nodeLog.Infof("inspector listening on %s", n.cfg.InspectorListen)
	if err := http.ListenAndServe(n.cfg.InspectorListen, mux); err != nil {
		nodeLog.Errorf("inspector server stopped: %v", err)
	}
}

