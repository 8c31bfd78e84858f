// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmgr

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/spv-node/wire"
)

func TestGoodExcludesAddressesWithExhaustedRetries(t *testing.T) {
	m := New()

	good := &wire.NetAddress{IP: net.ParseIP("203.0.113.1"), Port: 8333, Timestamp: uint32(time.Now().Unix())}
	bad := &wire.NetAddress{IP: net.ParseIP("203.0.113.2"), Port: 8333, Timestamp: uint32(time.Now().Unix())}
	m.AddAddress(good)
	m.AddAddress(bad)

	badKA, ok := m.Find(bad.IP, bad.Port)
	require.True(t, ok)
	badKA.attempts = numRetries
	badKA.lastattempt = time.Now().Add(-2 * time.Hour)

	candidates := m.Good()
	require.Len(t, candidates, 1)
	require.Equal(t, good.Port, candidates[0].NetAddress().Port)
}

func TestGoodCompactsEvictedKeys(t *testing.T) {
	m := New()
	na := &wire.NetAddress{IP: net.ParseIP("203.0.113.1"), Port: 8333, Timestamp: uint32(time.Now().Unix())}
	m.AddAddress(na)
	require.Len(t, m.keyList, 1)

	m.addrs.Delete(key(na.IP, na.Port))
	candidates := m.Good()
	require.Empty(t, candidates)
	require.Empty(t, m.keyList, "Good should drop keys that no longer resolve in addrs")
}
