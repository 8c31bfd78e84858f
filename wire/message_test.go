// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

func roundTrip(t *testing.T, msg Message) Message {
	t.Helper()
	frame, err := EncodeMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	consumed, command, payload, err := ExtractFrame(frame, MainNet)
	require.NoError(t, err)
	require.Equal(t, len(frame), consumed)
	require.Equal(t, msg.Command(), command)

	got, err := ParsePayload(command, payload, ProtocolVersion)
	require.NoError(t, err)
	return got
}

func TestMessageRoundTripEmptyVariants(t *testing.T) {
	for _, msg := range []Message{
		&MsgVerAck{}, &MsgGetAddr{}, &MsgMemPool{}, &MsgFilterClear{}, &MsgSendHeaders{},
	} {
		got := roundTrip(t, msg)
		require.Equal(t, msg.Command(), got.Command())
	}
}

func TestMessageRoundTripPingPong(t *testing.T) {
	got := roundTrip(t, &MsgPing{Nonce: 0xdeadbeefcafebabe})
	require.Equal(t, uint64(0xdeadbeefcafebabe), got.(*MsgPing).Nonce)

	gotPong := roundTrip(t, &MsgPong{Nonce: 42})
	require.Equal(t, uint64(42), gotPong.(*MsgPong).Nonce)
}

func TestMessageRoundTripVersion(t *testing.T) {
	v := &MsgVersion{
		ProtocolVersion: 70015,
		Services:        SFNodeNetwork,
		Timestamp:       1700000000,
		AddrRecv:        *NewNetAddressIPPort(net.ParseIP("1.2.3.4"), 8333, 0),
		AddrFrom:        *NewNetAddressIPPort(net.ParseIP("::1"), 8333, 0),
		Nonce:           123456789,
		UserAgent:       "/spv-node:0.1.0/",
		LastBlock:       700000,
		DisableRelayTx:  false,
	}
	got := roundTrip(t, v).(*MsgVersion)
	require.Equal(t, v.ProtocolVersion, got.ProtocolVersion)
	require.Equal(t, v.Nonce, got.Nonce)
	require.Equal(t, v.UserAgent, got.UserAgent)
	require.Equal(t, v.LastBlock, got.LastBlock)
	require.False(t, got.DisableRelayTx)
}

func TestMessageRoundTripAddrBoundaries(t *testing.T) {
	empty := &MsgAddr{}
	got := roundTrip(t, empty).(*MsgAddr)
	require.Len(t, got.AddrList, 0)

	one := &MsgAddr{}
	require.NoError(t, one.AddAddress(NewNetAddressIPPort(net.ParseIP("8.8.8.8"), 8333, SFNodeNetwork)))
	got = roundTrip(t, one).(*MsgAddr)
	require.Len(t, got.AddrList, 1)
	require.Equal(t, uint16(8333), got.AddrList[0].Port)

	var many MsgAddr
	for i := 0; i < MaxInvEntries; i++ {
		require.NoError(t, many.AddAddress(NewNetAddressIPPort(net.ParseIP("1.2.3.4"), 8333, 0)))
	}
	require.Error(t, many.AddAddress(NewNetAddressIPPort(net.ParseIP("1.2.3.4"), 8333, 0)))
	got = roundTrip(t, &many).(*MsgAddr)
	require.Len(t, got.AddrList, MaxInvEntries)
}

func TestMessageRoundTripGetHeaders(t *testing.T) {
	gh := &MsgGetHeaders{ProtocolVersion: ProtocolVersion}
	h1 := chainhash.DoubleHashH([]byte("a"))
	h2 := chainhash.DoubleHashH([]byte("b"))
	require.NoError(t, gh.AddBlockLocatorHash(&h1))
	require.NoError(t, gh.AddBlockLocatorHash(&h2))

	got := roundTrip(t, gh).(*MsgGetHeaders)
	require.Len(t, got.BlockLocatorHashes, 2)
	require.Equal(t, h1, *got.BlockLocatorHashes[0])
	require.Equal(t, h2, *got.BlockLocatorHashes[1])
}

func TestMessageRoundTripHeaders(t *testing.T) {
	mh := &MsgHeaders{}
	hdr := BlockHeader{Version: 1, Timestamp: 1231006505, Bits: 0x1d00ffff, Nonce: 2083236893}
	require.NoError(t, mh.AddBlockHeader(&BlockHeaderAndTxnCount{Header: hdr, TxnCount: 0}))

	got := roundTrip(t, mh).(*MsgHeaders)
	require.Len(t, got.Headers, 1)
	require.Equal(t, hdr.Bits, got.Headers[0].Header.Bits)
	require.Equal(t, uint64(0), got.Headers[0].TxnCount)
}

func TestMessageRoundTripReject(t *testing.T) {
	r := &MsgReject{Cmd: CmdHeaders, Code: RejectInvalid, Reason: "bad proof of work"}
	got := roundTrip(t, r).(*MsgReject)
	require.Equal(t, CmdHeaders, got.Cmd)
	require.Equal(t, RejectInvalid, got.Code)
	require.Equal(t, "bad proof of work", got.Reason)
}

func TestExtractFrameIncomplete(t *testing.T) {
	_, _, _, err := ExtractFrame([]byte{0x01, 0x02}, MainNet)
	require.ErrorIs(t, err, ErrIncompleteFrame)

	frame, err := EncodeMessage(&MsgPing{Nonce: 1}, ProtocolVersion, MainNet)
	require.NoError(t, err)
	_, _, _, err = ExtractFrame(frame[:len(frame)-1], MainNet)
	require.ErrorIs(t, err, ErrIncompleteFrame)
}

func TestExtractFrameBadMagicIsFatal(t *testing.T) {
	frame, err := EncodeMessage(&MsgPing{Nonce: 1}, ProtocolVersion, TestNet3)
	require.NoError(t, err)

	_, _, _, err = ExtractFrame(frame, MainNet)
	require.Error(t, err)
	fe, ok := err.(*FrameError)
	require.True(t, ok)
	require.True(t, fe.Fatal)
}

func TestExtractFrameBadChecksumDropsButAdvances(t *testing.T) {
	frame, err := EncodeMessage(&MsgHeaders{}, ProtocolVersion, MainNet)
	require.NoError(t, err)

	// Corrupt the checksum field (bytes 20-24) while leaving the rest of
	// the "headers" frame (a one-byte, zero-count payload) intact.
	corrupt := append([]byte(nil), frame...)
	corrupt[20] ^= 0xff

	consumed, command, _, err := ExtractFrame(corrupt, MainNet)
	require.Equal(t, len(frame), consumed)
	require.Equal(t, CmdHeaders, command)

	fe, ok := err.(*FrameError)
	require.True(t, ok)
	require.False(t, fe.Fatal)

	// A well-formed frame immediately following resynchronizes cleanly.
	next, err := EncodeMessage(&MsgPing{Nonce: 7}, ProtocolVersion, MainNet)
	require.NoError(t, err)
	consumed2, command2, payload2, err := ExtractFrame(next, MainNet)
	require.NoError(t, err)
	require.Equal(t, len(next), consumed2)
	require.Equal(t, CmdPing, command2)
	msg, err := ParsePayload(command2, payload2, ProtocolVersion)
	require.NoError(t, err)
	require.Equal(t, uint64(7), msg.(*MsgPing).Nonce)
}

func TestParsePayloadUnknownCommandDiscarded(t *testing.T) {
	_, err := ParsePayload("nonsense", nil, ProtocolVersion)
	require.ErrorIs(t, err, errUnknownCommand)
}

func TestParsePayloadDeprecatedCommandIgnored(t *testing.T) {
	_, err := ParsePayload(CmdCheckOrder, nil, ProtocolVersion)
	require.ErrorIs(t, err, errDeprecatedCommand)
	require.True(t, IsDeprecatedCommand(CmdCheckOrder))
}

func TestEmptyPayloadChecksumConstant(t *testing.T) {
	require.Equal(t, emptyPayloadChecksum, checksum(nil))
}
