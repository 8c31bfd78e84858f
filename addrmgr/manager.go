// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addrmgr implements the peer address table: addresses learned
// from a peer's ADDR message, keyed by "ip:port" and bounded so a
// long-running node doesn't grow the table without limit. The node records
// into it but does not pick reconnect targets from it; reconnects always
// dial the configured full node.
package addrmgr

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/decred/dcrd/lru"

	"github.com/toole-brendan/spv-node/wire"
)

// maxAddresses bounds the address table. Beyond this, the least recently
// used address is evicted to make room for a new one — this node never
// does peer discovery beyond recording addresses, so an unbounded table
// would only ever grow from whatever a single full node gossips at it.
const maxAddresses = 2000

// AddrManager is the peer address table: known peer addresses keyed by
// ip+port.
type AddrManager struct {
	mu    sync.Mutex
	addrs *lru.Map[string, *KnownAddress]

	// keyList is insertion-ordered and may outlive entries addrs has
	// since evicted; Good compacts it as it walks, since addrs itself
	// exposes no iteration over its live keys.
	keyList []string
}

// New returns an empty AddrManager.
func New() *AddrManager {
	return &AddrManager{
		addrs: lru.NewMap[string, *KnownAddress](maxAddresses),
	}
}

func key(ip net.IP, port uint16) string {
	return net.JoinHostPort(ip.String(), fmt.Sprintf("%d", port))
}

// AddAddress records na as known, unless it is already present (in which
// case its timestamp is refreshed, matching how a real node's repeated
// ADDR gossip about the same peer behaves).
func (m *AddrManager) AddAddress(na *wire.NetAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(na.IP, na.Port)
	if existing, ok := m.addrs.Get(k); ok {
		existing.na.Timestamp = na.Timestamp
		return
	}

	m.addrs.Put(k, &KnownAddress{na: na})
	m.keyList = append(m.keyList, k)
}

// Find looks up the known address for ip:port.
func (m *AddrManager) Find(ip net.IP, port uint16) (*KnownAddress, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addrs.Get(key(ip, port))
}

// Attempt records a connection attempt against ip:port's known address,
// a no-op if the address isn't tracked.
func (m *AddrManager) Attempt(ip net.IP, port uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ka, ok := m.addrs.Get(key(ip, port))
	if !ok {
		return
	}
	ka.attempts++
	ka.lastattempt = time.Now()
}

// Connected records a successful connection against ip:port's known
// address, resetting its failure count.
func (m *AddrManager) Connected(ip net.IP, port uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ka, ok := m.addrs.Get(key(ip, port))
	if !ok {
		return
	}
	ka.lastsuccess = time.Now()
	ka.tried = true
	ka.attempts = 0
}

// Good returns every known address not currently considered bad, the
// candidate pool a connector should pick its next dial target from.
//
// Nothing in this node calls Good today: the reconnect loop always
// redials the single configured --fullnode rather than discovering a
// peer to try next, per the "no peer discovery" Non-goal. Good (and the
// isBad/chance heuristics behind it) exist as the table's dial-selection
// surface for a future multi-peer connector, kept and tested rather than
// left half-built.
func (m *AddrManager) Good() []*KnownAddress {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.keyList[:0]
	var good []*KnownAddress
	for _, k := range m.keyList {
		ka, ok := m.addrs.Get(k)
		if !ok {
			continue // evicted from the bounded table since it was recorded
		}
		live = append(live, k)
		if !ka.isBad() {
			good = append(good, ka)
		}
	}
	m.keyList = live
	return good
}

// Len reports the number of addresses currently tracked.
func (m *AddrManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addrs.Len()
}
