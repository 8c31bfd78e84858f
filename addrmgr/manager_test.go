// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrmgr_test

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/spv-node/addrmgr"
	"github.com/toole-brendan/spv-node/wire"
)

func addrAt(t *testing.T, ip string, port uint16) *wire.NetAddress {
	t.Helper()
	return &wire.NetAddress{
		IP:        net.ParseIP(ip),
		Port:      port,
		Timestamp: uint32(time.Now().Unix()),
	}
}

func TestAddAddressThenFind(t *testing.T) {
	m := addrmgr.New()
	na := addrAt(t, "203.0.113.1", 8333)
	m.AddAddress(na)

	found, ok := m.Find(na.IP, na.Port)
	require.True(t, ok)
	require.Equal(t, na.Port, found.NetAddress().Port)
	require.Equal(t, 1, m.Len())
}

func TestAddAddressTwiceRefreshesRatherThanDuplicates(t *testing.T) {
	m := addrmgr.New()
	na := addrAt(t, "203.0.113.1", 8333)
	m.AddAddress(na)

	updated := addrAt(t, "203.0.113.1", 8333)
	updated.Timestamp = na.Timestamp + 100
	m.AddAddress(updated)

	require.Equal(t, 1, m.Len())
	found, _ := m.Find(na.IP, na.Port)
	require.Equal(t, updated.Timestamp, found.NetAddress().Timestamp)
}

func TestFindOnUnknownAddressFails(t *testing.T) {
	m := addrmgr.New()
	_, ok := m.Find(net.ParseIP("203.0.113.9"), 8333)
	require.False(t, ok)
}

func TestGoodIncludesFreshlyAddedAddresses(t *testing.T) {
	m := addrmgr.New()
	na := addrAt(t, "203.0.113.1", 8333)
	m.AddAddress(na)

	good := m.Good()
	require.Len(t, good, 1)
	require.Equal(t, na.Port, good[0].NetAddress().Port)
}

func TestAttemptOnUnknownAddressIsANoOp(t *testing.T) {
	m := addrmgr.New()
	require.NotPanics(t, func() {
		m.Attempt(net.ParseIP("203.0.113.9"), 8333)
	})
	require.Equal(t, 0, m.Len())
}
