// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// MsgVersion implements Message for the handshake's version payload.
type MsgVersion struct {
	// ProtocolVersion is the protocol version the transmitting peer
	// understands.
	ProtocolVersion int32

	// Services advertises the transmitting peer's capabilities.
	Services ServiceFlag

	// Timestamp is the transmitting node's current time.
	Timestamp int64

	// AddrRecv is the network address of the receiving peer as seen by
	// the transmitting peer.
	AddrRecv NetAddress

	// AddrFrom is the network address of the transmitting peer, a field
	// added at protocol version 106. BtcEncode always writes it; this node
	// always zeroes it on outbound version messages.
	AddrFrom NetAddress

	// Nonce is a random value used to detect self-connections.
	Nonce uint64

	// UserAgent identifies the software and version of the transmitting
	// node.
	UserAgent string

	// LastBlock is the height of the transmitting peer's best known
	// block, i.e. its "start height".
	LastBlock int32

	// DisableRelayTx indicates the peer does not want unconfirmed
	// transactions relayed before a filter is set. Only meaningful at
	// pver >= BIP0037Version (70001); defaults to relay-on.
	DisableRelayTx bool
}

// Command returns "version".
func (m *MsgVersion) Command() string { return CmdVersion }

// MaxPayloadLength bounds a version payload generously for its longest
// field, the VarStr user agent.
func (m *MsgVersion) MaxPayloadLength(pver uint32) uint32 {
	return 4 + 8 + 8 + timedNetAddressLen*2 + 8 + uint32(VarStringSerializeSize(string(make([]byte, MaxVarStringLen)))) + 4 + 1
}

// BtcEncode writes the version payload.
func (m *MsgVersion) BtcEncode(w io.Writer, pver uint32) error {
	var buf [20]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(m.ProtocolVersion))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(m.Services))
	binary.LittleEndian.PutUint64(buf[12:20], uint64(m.Timestamp))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	if err := writeNetAddress(w, &m.AddrRecv, false); err != nil {
		return err
	}
	if err := writeNetAddress(w, &m.AddrFrom, false); err != nil {
		return err
	}

	var nonceBuf [8]byte
	binary.LittleEndian.PutUint64(nonceBuf[:], m.Nonce)
	if _, err := w.Write(nonceBuf[:]); err != nil {
		return err
	}

	if err := WriteVarString(w, m.UserAgent); err != nil {
		return err
	}

	var tailBuf [4]byte
	binary.LittleEndian.PutUint32(tailBuf[:], uint32(m.LastBlock))
	if _, err := w.Write(tailBuf[:]); err != nil {
		return err
	}

	if pver >= BIP0037Version {
		relay := byte(0)
		if !m.DisableRelayTx {
			relay = 1
		}
		if _, err := w.Write([]byte{relay}); err != nil {
			return err
		}
	}
	return nil
}

// BtcDecode reads the version payload. The legacy addr_from field and the
// trailing relay byte are only present for sufficiently new protocol
// versions; BtcDecode detects their presence from however many bytes
// remain rather than trusting pver, since the peer's own version may be
// older than ours.
func (m *MsgVersion) BtcDecode(r io.Reader, pver uint32) error {
	var buf [20]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	m.ProtocolVersion = int32(binary.LittleEndian.Uint32(buf[0:4]))
	m.Services = ServiceFlag(binary.LittleEndian.Uint64(buf[4:12]))
	m.Timestamp = int64(binary.LittleEndian.Uint64(buf[12:20]))

	addrRecv, err := readNetAddress(r, false)
	if err != nil {
		return err
	}
	m.AddrRecv = *addrRecv

	// addr_from, nonce, user_agent, start_height, relay are all optional
	// tail fields depending on how old the remote protocol version is;
	// a peer speaking a pre-106 version may close the connection right
	// after addr_recv. Attempt each field and stop cleanly at EOF.
	addrFrom, err := readNetAddress(r, false)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		return err
	}
	m.AddrFrom = *addrFrom

	var nonceBuf [8]byte
	if _, err := io.ReadFull(r, nonceBuf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		return err
	}
	m.Nonce = binary.LittleEndian.Uint64(nonceBuf[:])

	userAgent, err := ReadVarString(r)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		return err
	}
	m.UserAgent = userAgent

	var tailBuf [4]byte
	if _, err := io.ReadFull(r, tailBuf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		return err
	}
	m.LastBlock = int32(binary.LittleEndian.Uint32(tailBuf[:]))

	var relayBuf [1]byte
	if _, err := io.ReadFull(r, relayBuf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		return err
	}
	m.DisableRelayTx = relayBuf[0] == 0

	return nil
}
