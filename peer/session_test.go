// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"bytes"
	"encoding/hex"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/spv-node/addrmgr"
	"github.com/toole-brendan/spv-node/chain"
	"github.com/toole-brendan/spv-node/chaincfg"
	"github.com/toole-brendan/spv-node/wire"
)

// headerA1 is a real regtest header mined against chaincfg.RegressionNetParams'
// genesis, reused here from the chain package's own reorg fixtures so
// handleHeaders exercises real proof-of-work validation rather than a stub.
const headerA1 = "0100000006226e46111a0b59caaf126043eb5bbf28c34f3a5e332a1fc7b2b73cf188910f16a36e86f6fed5d465ff332511a0ce1a863b55d364b25a7cdaa25db19abf964801f15365ffff7f2000000000"

func header(t *testing.T, rawHex string) wire.BlockHeader {
	t.Helper()
	raw, err := hex.DecodeString(rawHex)
	require.NoError(t, err)
	var h wire.BlockHeader
	require.NoError(t, h.Deserialize(bytes.NewReader(raw)))
	return h
}

// fakePeer wraps one end of a net.Pipe and speaks just enough of the
// wire protocol to stand in for a real full node during handshake tests.
type fakePeer struct {
	t    *testing.T
	conn net.Conn
}

func newFakePeer(t *testing.T, conn net.Conn) *fakePeer {
	return &fakePeer{t: t, conn: conn}
}

func (p *fakePeer) send(msg wire.Message) {
	p.t.Helper()
	frame, err := wire.EncodeMessage(msg, wire.ProtocolVersion, chaincfg.RegressionNetParams.Net)
	require.NoError(p.t, err)
	_, err = p.conn.Write(frame)
	require.NoError(p.t, err)
}

func (p *fakePeer) recv() wire.Message {
	p.t.Helper()
	var inbuf []byte
	for {
		consumed, command, payload, err := wire.ExtractFrame(inbuf, chaincfg.RegressionNetParams.Net)
		if err == nil {
			msg, perr := wire.ParsePayload(command, payload, wire.ProtocolVersion)
			require.NoError(p.t, perr)
			_ = consumed
			return msg
		}
		chunk := make([]byte, 4096)
		n, rerr := p.conn.Read(chunk)
		require.NoError(p.t, rerr)
		inbuf = append(inbuf, chunk[:n]...)
	}
}

func newTestSession(t *testing.T) (*Session, net.Conn) {
	t.Helper()
	clientConn, peerConn := net.Pipe()

	c := chain.New(&chaincfg.RegressionNetParams, nil, nil)
	s := New(Config{
		Params: &chaincfg.RegressionNetParams,
		Chain:  c,
		Host:   "127.0.0.1",
		Port:   "18444",
	})
	s.conn = clientConn
	return s, peerConn
}

func TestHandshakeCompletesOnVersionThenVerAck(t *testing.T) {
	s, peerConn := newTestSession(t)
	defer s.Close()
	defer peerConn.Close()

	fp := newFakePeer(t, peerConn)

	done := make(chan error, 1)
	go func() { done <- s.handshake() }()

	// The session should have sent its own version first.
	msg := fp.recv()
	_, ok := msg.(*wire.MsgVersion)
	require.True(t, ok, "expected session to send version first")

	fp.send(&wire.MsgVersion{
		ProtocolVersion: int32(wire.ProtocolVersion),
		Services:        wire.SFNodeNetwork,
		Timestamp:       time.Now().Unix(),
		AddrRecv:        wire.NetAddress{IP: net.IPv4zero},
		AddrFrom:        wire.NetAddress{IP: net.IPv4zero},
		Nonce:           1,
		UserAgent:       "/fakepeer:0.1/",
		LastBlock:       200,
	})

	// Session must verack our version before the handshake completes.
	ack := fp.recv()
	_, ok = ack.(*wire.MsgVerAck)
	require.True(t, ok, "expected session to verack our version")

	fp.send(&wire.MsgVerAck{})

	require.NoError(t, <-done)
	require.Equal(t, int32(wire.ProtocolVersion), s.PeerVersion())
	require.Equal(t, int32(200), s.PeerHeight())
}

func TestHandlePingRepliesWithMatchingPong(t *testing.T) {
	s, peerConn := newTestSession(t)
	defer s.Close()
	defer peerConn.Close()

	fp := newFakePeer(t, peerConn)

	done := make(chan error, 1)
	go func() {
		// The pong is queued on the outbound buffer; flush it as the
		// event loop would on its next write-ready wakeup.
		err := s.HandleMessage(&wire.MsgPing{Nonce: 0xdeadbeef})
		if err == nil {
			err = s.flushOutbound()
		}
		done <- err
	}()

	pong := fp.recv()
	reply, ok := pong.(*wire.MsgPong)
	require.True(t, ok)
	require.Equal(t, uint64(0xdeadbeef), reply.Nonce)
	require.NoError(t, <-done)
}

func TestHandleHeadersEmptyBatchSettlesIdle(t *testing.T) {
	s, peerConn := newTestSession(t)
	defer s.Close()
	defer peerConn.Close()
	s.state = StateSyncing

	require.NoError(t, s.HandleMessage(&wire.MsgHeaders{}))
	require.Equal(t, StateSyncedIdle, s.State())
}

func TestHandleHeadersInsertsIntoChainAndRequestsMore(t *testing.T) {
	s, peerConn := newTestSession(t)
	defer s.Close()
	defer peerConn.Close()
	s.peerVersion = int32(wire.ProtocolVersion)
	s.state = StateSyncing

	fp := newFakePeer(t, peerConn)

	valid := header(t, headerA1)
	batch := &wire.MsgHeaders{
		Headers: []*wire.BlockHeaderAndTxnCount{{Header: valid, TxnCount: 0}},
	}

	done := make(chan error, 1)
	go func() {
		err := s.HandleMessage(batch)
		if err == nil {
			err = s.flushOutbound()
		}
		done <- err
	}()

	// handleHeaders re-requests via GETHEADERS once the batch is applied.
	msg := fp.recv()
	_, ok := msg.(*wire.MsgGetHeaders)
	require.True(t, ok, "expected a follow-up getheaders request")
	require.NoError(t, <-done)

	require.Equal(t, StateSyncing, s.State())
	require.Equal(t, int32(1), s.cfg.Chain.Height())
}

func TestHandleAddrRecordsIntoAddrManager(t *testing.T) {
	s, peerConn := newTestSession(t)
	defer s.Close()
	defer peerConn.Close()

	mgr := addrmgr.New()
	s.cfg.Addrs = mgr

	na := &wire.NetAddress{IP: net.ParseIP("203.0.113.5"), Port: 8333, Timestamp: uint32(time.Now().Unix())}
	require.NoError(t, s.HandleMessage(&wire.MsgAddr{AddrList: []*wire.NetAddress{na}}))

	_, ok := mgr.Find(na.IP, na.Port)
	require.True(t, ok)
}
